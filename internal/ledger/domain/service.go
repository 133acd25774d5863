package domain

import (
	"context"
	"errors"
	"time"

	cartdomain "github.com/smallbiznis/billdesk/internal/cart/domain"
)

type Service interface {
	// Finalize commits the live cart into a new immutable invoice and
	// empties the cart without restoring stock. Export is a separate
	// phase; a committed invoice can be exported at any later time.
	Finalize(ctx context.Context, req FinalizeRequest) (*InvoiceResponse, error)

	// List returns the full history, most recent first.
	List(ctx context.Context) ([]InvoiceResponse, error)
	Get(ctx context.Context, id string) (*InvoiceResponse, error)
	Summary(ctx context.Context) (*Summary, error)

	// Clear empties the ledger and its persisted copy.
	Clear(ctx context.Context) error
}

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type FinalizeRequest struct {
	Customer   Customer
	AmountPaid float64
	IssueDate  time.Time
	Basis      cartdomain.PriceBasis
}

// InvoiceResponse mirrors the exported JSON document for an invoice.
type InvoiceResponse struct {
	ID         string         `json:"id"`
	Date       time.Time      `json:"date"`
	Customer   Customer       `json:"customer"`
	Items      []ItemResponse `json:"items"`
	Subtotal   float64        `json:"subtotal"`
	TotalBonus float64        `json:"totalBv"`
	Paid       float64        `json:"paid"`
	Balance    float64        `json:"balance"`
}

type ItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	MRP       float64 `json:"mrp"`
	BV        float64 `json:"bv"`
}

type Summary struct {
	TotalInvoices     int64   `json:"totalInvoices"`
	TotalBalance      float64 `json:"totalBalance"`
	TotalProductsSold int64   `json:"totalProductsSold"`
}

var (
	ErrEmptyCart          = errors.New("empty_cart")
	ErrFinalizeInProgress = errors.New("finalize_in_progress")
	ErrNotFound           = errors.New("not_found")
)
