package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Exists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Invoice, error)

	// FindAll returns invoices most recent first, lines in seq order.
	FindAll(ctx context.Context, db *gorm.DB) ([]Invoice, error)

	Summary(ctx context.Context, db *gorm.DB) (*Summary, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
}
