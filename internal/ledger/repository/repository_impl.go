package repository

import (
	"context"

	"github.com/smallbiznis/billdesk/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := invoice.Lines
		invoice.Lines = nil
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		invoice.Lines = lines
		return nil
	})
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Invoice, error) {
	var items []domain.Invoice
	err := db.WithContext(ctx).
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq ASC") }).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Summary(ctx context.Context, db *gorm.DB) (*domain.Summary, error) {
	var out domain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*)                              AS total_invoices,
		        COALESCE(SUM(subtotal - amount_paid), 0) AS total_balance
		 FROM invoices`,
	).Scan(&out).Error
	if err != nil {
		return nil, err
	}

	var sold int64
	err = db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(quantity), 0) FROM invoice_lines`,
	).Scan(&sold).Error
	if err != nil {
		return nil, err
	}
	out.TotalProductsSold = sold
	return &out, nil
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM invoice_lines`).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM invoices`).Error
	})
}
