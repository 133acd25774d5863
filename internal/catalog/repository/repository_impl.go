package repository

import (
	"context"

	"github.com/smallbiznis/billdesk/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM products WHERE id = ?`, id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, category string) ([]domain.Product, error) {
	var items []domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		stmt = stmt.Where("category = ?", category)
	}
	if err := stmt.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Categories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var cats []string
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *repo) MaxID(ctx context.Context, db *gorm.DB) (int64, error) {
	var max int64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(id), 0) FROM products`,
	).Scan(&max).Error
	return max, err
}

func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, id int64, delta int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock = CASE WHEN stock + ? < 0 THEN 0 ELSE stock + ? END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		delta, delta, id,
	).Error
}

func (r *repo) Reserve(ctx context.Context, db *gorm.DB, id int64, qty int) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND stock >= ?`,
		qty, id, qty,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Release(ctx context.Context, db *gorm.DB, id int64, qty int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		qty, id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products`).Error
}
