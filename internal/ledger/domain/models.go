package domain

import (
	"time"
)

// Invoice is immutable once created. BalanceDue is never stored; it is
// recomputed from Subtotal and AmountPaid wherever it is needed.
type Invoice struct {
	ID              string        `gorm:"primaryKey;type:text"`
	IssueDate       time.Time     `gorm:"not null"`
	CustomerName    string        `gorm:"type:text"`
	CustomerAddress string        `gorm:"type:text"`
	CustomerPhone   string        `gorm:"type:text"`
	PriceBasis      string        `gorm:"type:text;not null"`
	Subtotal        float64       `gorm:"not null"`
	TotalBonus      float64       `gorm:"not null;default:0"`
	AmountPaid      float64       `gorm:"not null;default:0"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Lines           []InvoiceLine `gorm:"foreignKey:InvoiceID;references:ID"`
}

func (Invoice) TableName() string { return "invoices" }

func (i Invoice) BalanceDue() float64 {
	return i.Subtotal - i.AmountPaid
}

// InvoiceLine is a snapshot of a cart line at finalize time. UnitPrice
// is the price actually billed (dealer or list, per the invoice's
// basis); ListPrice is kept so the MRP column can still be printed.
type InvoiceLine struct {
	ID         int64   `gorm:"primaryKey"`
	InvoiceID  string  `gorm:"type:text;not null;index"`
	Seq        int     `gorm:"not null"`
	ProductID  int64   `gorm:"not null"`
	Name       string  `gorm:"type:text;not null"`
	Quantity   int     `gorm:"not null"`
	UnitPrice  float64 `gorm:"not null"`
	ListPrice  float64 `gorm:"not null"`
	BonusValue float64 `gorm:"not null;default:0"`
}

func (InvoiceLine) TableName() string { return "invoice_lines" }
