package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB, category string) ([]Product, error)
	Categories(ctx context.Context, db *gorm.DB) ([]string, error)
	MaxID(ctx context.Context, db *gorm.DB) (int64, error)

	// AdjustStock applies delta to the stock count, flooring at zero.
	// Unknown ids are a no-op.
	AdjustStock(ctx context.Context, db *gorm.DB, id int64, delta int) error

	// Reserve decrements stock by qty only when at least qty units are
	// available. Returns false when the product is unknown or short.
	Reserve(ctx context.Context, db *gorm.DB, id int64, qty int) (bool, error)

	// Release returns qty units to stock. Unknown ids are a no-op.
	Release(ctx context.Context, db *gorm.DB, id int64, qty int) error

	Delete(ctx context.Context, db *gorm.DB, id int64) error
	DeleteAll(ctx context.Context, db *gorm.DB) error
}
