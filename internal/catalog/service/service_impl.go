package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/smallbiznis/billdesk/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

// DealerPrice derives the dealer price from a list price: a 10%
// discount rounded to two decimal places.
func DealerPrice(listPrice float64) float64 {
	return math.Round(listPrice*0.9*100) / 100
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if math.IsNaN(req.ListPrice) || math.IsInf(req.ListPrice, 0) || req.ListPrice < 0 {
		return nil, domain.ErrInvalidListPrice
	}

	bv := req.BonusValue
	if math.IsNaN(bv) || math.IsInf(bv, 0) || bv < 0 {
		bv = 0
	}
	stock := req.Stock
	if stock < 0 {
		stock = 0
	}

	var created *domain.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		maxID, err := s.repo.MaxID(ctx, tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		p := &domain.Product{
			ID:          maxID + 1,
			Name:        name,
			Category:    strings.TrimSpace(req.Category),
			ListPrice:   req.ListPrice,
			DealerPrice: DealerPrice(req.ListPrice),
			BonusValue:  bv,
			Stock:       stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, tx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product added",
		zap.Int64("id", created.ID),
		zap.String("name", created.Name),
		zap.Int("stock", created.Stock),
	)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, s.db, strings.TrimSpace(req.Category))
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx, s.db)
}

func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) error {
	return s.repo.AdjustStock(ctx, s.db, id, delta)
}

func (s *Service) Reserve(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return nil
	}
	ok, err := s.repo.Reserve(ctx, s.db, id, qty)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (s *Service) Release(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return nil
	}
	return s.repo.Release(ctx, s.db, id, qty)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	p, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.log.Info("product removed", zap.Int64("id", id), zap.String("name", p.Name))
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, s.db); err != nil {
		return err
	}
	s.log.Info("catalog cleared")
	return nil
}
