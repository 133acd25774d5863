package domain

import (
	"context"
	"errors"
)

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Product, error)
	List(ctx context.Context, req ListRequest) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Categories(ctx context.Context) ([]string, error)

	AdjustStock(ctx context.Context, id int64, delta int) error
	Reserve(ctx context.Context, id int64, qty int) error
	Release(ctx context.Context, id int64, qty int) error

	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

type AddRequest struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	ListPrice  float64 `json:"mrp"`
	BonusValue float64 `json:"bv"`
	Stock      int     `json:"stock"`
}

type ListRequest struct {
	Category string
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidListPrice  = errors.New("invalid_list_price")
	ErrNotFound          = errors.New("not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
