package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/billdesk/internal/catalog/domain"
	"github.com/smallbiznis/billdesk/internal/catalog/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.Product{}))

	return New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
}

func TestDealerPrice(t *testing.T) {
	assert.Equal(t, 90.0, DealerPrice(100))
	assert.Equal(t, 89.99, DealerPrice(99.99))
	assert.Equal(t, 29.7, DealerPrice(33))
	assert.Equal(t, 0.0, DealerPrice(0))
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, domain.AddRequest{Name: "Protein Powder", ListPrice: 100})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, 90.0, first.DealerPrice)

	second, err := svc.Add(ctx, domain.AddRequest{Name: "Multivitamin", ListPrice: 250})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	// Removing the highest id frees it for reuse.
	assert.NoError(t, svc.Remove(ctx, second.ID))
	third, err := svc.Add(ctx, domain.AddRequest{Name: "Calcium", ListPrice: 50})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), third.ID)
}

func TestAddValidation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.AddRequest{Name: "   ", ListPrice: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Add(ctx, domain.AddRequest{Name: "Soap", ListPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidListPrice)

	// Negative bonus value and stock are coerced to zero, not rejected.
	p, err := svc.Add(ctx, domain.AddRequest{Name: "Soap", ListPrice: 40, BonusValue: -5, Stock: -3})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, p.BonusValue)
	assert.Equal(t, 0, p.Stock)
}

func TestAddTrimsName(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Add(context.Background(), domain.AddRequest{Name: "  Shampoo  ", Category: " Hair ", ListPrice: 120})
	assert.NoError(t, err)
	assert.Equal(t, "Shampoo", p.Name)
	assert.Equal(t, "Hair", p.Category)
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	p, err := svc.Add(ctx, domain.AddRequest{Name: "Soap", ListPrice: 40, Stock: 5})
	assert.NoError(t, err)

	assert.NoError(t, svc.AdjustStock(ctx, p.ID, -10))
	got, err := svc.Get(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	assert.NoError(t, svc.AdjustStock(ctx, p.ID, 3))
	got, err = svc.Get(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestReserveAndRelease(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	p, err := svc.Add(ctx, domain.AddRequest{Name: "Soap", ListPrice: 40, Stock: 2})
	assert.NoError(t, err)

	assert.NoError(t, svc.Reserve(ctx, p.ID, 1))
	got, _ := svc.Get(ctx, p.ID)
	assert.Equal(t, 1, got.Stock)

	// A reservation larger than the remaining stock fails whole.
	err = svc.Reserve(ctx, p.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, _ = svc.Get(ctx, p.ID)
	assert.Equal(t, 1, got.Stock)

	assert.NoError(t, svc.Release(ctx, p.ID, 1))
	got, _ = svc.Get(ctx, p.ID)
	assert.Equal(t, 2, got.Stock)
}

func TestGetNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveNotFound(t *testing.T) {
	svc := setupService(t)

	err := svc.Remove(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByCategory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.AddRequest{Name: "Soap", Category: "Personal Care", ListPrice: 40})
	assert.NoError(t, err)
	_, err = svc.Add(ctx, domain.AddRequest{Name: "Protein", Category: "Health", ListPrice: 900})
	assert.NoError(t, err)

	all, err := svc.List(ctx, domain.ListRequest{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	health, err := svc.List(ctx, domain.ListRequest{Category: "Health"})
	assert.NoError(t, err)
	assert.Len(t, health, 1)
	assert.Equal(t, "Protein", health[0].Name)
}

func TestCategories(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, req := range []domain.AddRequest{
		{Name: "Soap", Category: "Personal Care", ListPrice: 40},
		{Name: "Shampoo", Category: "Personal Care", ListPrice: 120},
		{Name: "Protein", Category: "Health", ListPrice: 900},
	} {
		_, err := svc.Add(ctx, req)
		assert.NoError(t, err)
	}

	categories, err := svc.Categories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Health", "Personal Care"}, categories)
}

func TestClearEmptiesCatalog(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.AddRequest{Name: "Soap", ListPrice: 40})
	assert.NoError(t, err)

	assert.NoError(t, svc.Clear(ctx))
	all, err := svc.List(ctx, domain.ListRequest{})
	assert.NoError(t, err)
	assert.Empty(t, all)
}
