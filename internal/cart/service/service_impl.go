package service

import (
	"context"
	"errors"
	"sync"

	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	"github.com/smallbiznis/billdesk/internal/cart/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog catalogdomain.Service
}

// Service keeps the session cart in memory. Stock reservations go
// through the catalog, so the mutex plus the catalog's conditional
// updates make every operation all-or-nothing.
type Service struct {
	log     *zap.Logger
	catalog catalogdomain.Service

	mu    sync.Mutex
	lines []domain.Line
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("cart.service"),
		catalog: p.Catalog,
	}
}

func (s *Service) Add(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if err := s.catalog.Reserve(ctx, productID, 1); err != nil {
		if errors.Is(err, catalogdomain.ErrInsufficientStock) {
			return domain.ErrOutOfStock
		}
		return err
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return nil
		}
	}

	s.lines = append(s.lines, domain.Line{
		ProductID:   productID,
		Name:        p.Name,
		Category:    p.Category,
		DealerPrice: p.DealerPrice,
		ListPrice:   p.ListPrice,
		BonusValue:  p.BonusValue,
		Quantity:    1,
	})
	return nil
}

func (s *Service) SetQuantity(ctx context.Context, productID int64, qty int) error {
	if qty < 0 {
		qty = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return domain.ErrLineNotFound
	}

	delta := qty - s.lines[idx].Quantity
	switch {
	case delta > 0:
		if err := s.catalog.Reserve(ctx, productID, delta); err != nil {
			if errors.Is(err, catalogdomain.ErrInsufficientStock) {
				return domain.ErrInsufficientStock
			}
			return err
		}
	case delta < 0:
		if err := s.catalog.Release(ctx, productID, -delta); err != nil {
			return err
		}
	}

	if qty == 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		return nil
	}
	s.lines[idx].Quantity = qty
	return nil
}

func (s *Service) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return domain.ErrLineNotFound
	}

	if err := s.catalog.Release(ctx, productID, s.lines[idx].Quantity); err != nil {
		return err
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	return nil
}

func (s *Service) Evict(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.log.Info("cart line evicted with product",
		zap.Int64("product_id", productID),
		zap.Int("written_off", s.lines[idx].Quantity),
	)
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Every line is dropped even when its release fails; stopping
	// midway would leave lines whose units were already returned, and
	// a later Remove would release them twice.
	for _, l := range s.lines {
		if err := s.catalog.Release(ctx, l.ProductID, l.Quantity); err != nil {
			s.log.Warn("stock release failed on clear",
				zap.Int64("product_id", l.ProductID),
				zap.Int("written_off", l.Quantity),
				zap.Error(err),
			)
		}
	}
	s.lines = nil
	return nil
}

func (s *Service) Consume() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.lines
	s.lines = nil
	return out
}

func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Service) Subtotal(basis domain.PriceBasis) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, l := range s.lines {
		sum += float64(l.Quantity) * l.UnitPrice(basis)
	}
	return sum
}

func (s *Service) TotalBonus() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, l := range s.lines {
		sum += float64(l.Quantity) * l.BonusValue
	}
	return sum
}

// indexOf is called with s.mu held.
func (s *Service) indexOf(productID int64) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
