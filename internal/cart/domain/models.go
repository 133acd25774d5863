package domain

import "errors"

// PriceBasis selects which of the two snapshot prices a cart or
// invoice line is billed at.
type PriceBasis string

const (
	// BasisDP bills at the dealer price (the default).
	BasisDP PriceBasis = "dp"
	// BasisMRP bills at the maximum retail price.
	BasisMRP PriceBasis = "mrp"
)

// Line is a cart entry. Name, category and both prices are snapshots
// taken when the product was first added; later catalog edits do not
// flow into an open cart.
type Line struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	DealerPrice float64 `json:"price"`
	ListPrice   float64 `json:"mrp"`
	BonusValue  float64 `json:"bv"`
	Quantity    int     `json:"qty"`
}

// UnitPrice returns the billed price for the given basis.
func (l Line) UnitPrice(basis PriceBasis) float64 {
	if basis == BasisMRP {
		return l.ListPrice
	}
	return l.DealerPrice
}

var (
	ErrProductNotFound   = errors.New("product_not_found")
	ErrOutOfStock        = errors.New("out_of_stock")
	ErrLineNotFound      = errors.New("item_not_in_cart")
	ErrInsufficientStock = errors.New("not_enough_stock")
)
