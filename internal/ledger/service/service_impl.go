package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
	cartdomain "github.com/smallbiznis/billdesk/internal/cart/domain"
	"github.com/smallbiznis/billdesk/internal/clock"
	"github.com/smallbiznis/billdesk/internal/ledger/domain"
	"github.com/smallbiznis/billdesk/internal/ledger/format"
	"github.com/smallbiznis/billdesk/internal/metrics"
	"github.com/smallbiznis/billdesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Cart    cartdomain.Service
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	cart    cartdomain.Service
	repo    domain.Repository
	metrics *metrics.Metrics

	// single-flight finalize guard; adequate for the one active
	// session this application serves.
	finalizing atomic.Bool
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("ledger.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		cart:    p.Cart,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Finalize(ctx context.Context, req domain.FinalizeRequest) (*domain.InvoiceResponse, error) {
	if !s.finalizing.CompareAndSwap(false, true) {
		return nil, domain.ErrFinalizeInProgress
	}
	defer s.finalizing.Store(false)

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	basis := req.Basis
	if basis != cartdomain.BasisMRP {
		basis = cartdomain.BasisDP
	}

	now := s.clock.Now()
	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = now
	}

	id, err := s.nextNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		ID:              id,
		IssueDate:       issueDate.UTC(),
		CustomerName:    req.Customer.Name,
		CustomerAddress: req.Customer.Address,
		CustomerPhone:   req.Customer.Phone,
		PriceBasis:      string(basis),
		AmountPaid:      req.AmountPaid,
		CreatedAt:       now,
	}
	for i, l := range lines {
		unit := l.UnitPrice(basis)
		inv.Subtotal += float64(l.Quantity) * unit
		inv.TotalBonus += float64(l.Quantity) * l.BonusValue
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			ID:         s.genID.Generate().Int64(),
			InvoiceID:  id,
			Seq:        i + 1,
			ProductID:  l.ProductID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  unit,
			ListPrice:  l.ListPrice,
			BonusValue: l.BonusValue,
		})
	}

	if err := s.repo.Create(ctx, s.db, inv); err != nil {
		// The Exists pre-check in nextNumber can race with the insert;
		// a duplicate key here is a number collision, not a failure.
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		id, err = s.nextNumber(ctx, now.Add(time.Millisecond))
		if err != nil {
			return nil, err
		}
		inv.ID = id
		for i := range inv.Lines {
			inv.Lines[i].InvoiceID = id
		}
		if err := s.repo.Create(ctx, s.db, inv); err != nil {
			return nil, err
		}
	}

	// The invoice is durably recorded; only now are the cart's
	// reservations consumed. Nothing past this point may fail the
	// finalize.
	s.cart.Consume()
	s.metrics.InvoicesFinalized.Inc()

	s.log.Info("invoice finalized",
		zap.String("id", inv.ID),
		zap.Int("lines", len(inv.Lines)),
		zap.Float64("subtotal", inv.Subtotal),
		zap.Float64("balance", inv.BalanceDue()),
	)

	resp := toResponse(inv)
	return &resp, nil
}

// nextNumber derives a time-based invoice number, advancing the
// derivation instant until the number is unused. Keeps ids unique under
// rapid sequential finalization without abandoning the time-derived
// scheme.
func (s *Service) nextNumber(ctx context.Context, now time.Time) (string, error) {
	for i := 0; ; i++ {
		id := format.InvoiceNumber(now.Add(time.Duration(i) * time.Millisecond))
		taken, err := s.repo.Exists(ctx, s.db, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
}

func (s *Service) List(ctx context.Context) ([]domain.InvoiceResponse, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.InvoiceResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(inv)
	return &resp, nil
}

func (s *Service) Summary(ctx context.Context) (*domain.Summary, error) {
	return s.repo.Summary(ctx, s.db)
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, s.db); err != nil {
		return err
	}
	s.log.Info("invoice history cleared")
	return nil
}

func toResponse(inv *domain.Invoice) domain.InvoiceResponse {
	resp := domain.InvoiceResponse{
		ID:         inv.ID,
		Date:       inv.IssueDate,
		Customer:   domain.Customer{Name: inv.CustomerName, Address: inv.CustomerAddress, Phone: inv.CustomerPhone},
		Subtotal:   inv.Subtotal,
		TotalBonus: inv.TotalBonus,
		Paid:       inv.AmountPaid,
		Balance:    inv.BalanceDue(),
	}
	for _, l := range inv.Lines {
		resp.Items = append(resp.Items, domain.ItemResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Quantity,
			Price:     l.UnitPrice,
			MRP:       l.ListPrice,
			BV:        l.BonusValue,
		})
	}
	return resp
}
