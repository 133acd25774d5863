package pdf

import (
	"bytes"
	"context"
	"io"
)

// InvoiceData is the fully formatted input for a rendered invoice
// page. Monetary fields arrive preformatted; the renderer does no
// arithmetic.
type InvoiceData struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	InvoiceNumber string
	IssueDate     string
	Terms         string

	BillToName    string
	BillToPhone   string
	BillToAddress string

	Items []InvoiceItem

	Subtotal   string
	TotalBonus string
	Total      string
	Balance    string
}

type InvoiceItem struct {
	Description string
	Qty         int
	MRP         string
	UnitPrice   string
	Amount      string
	Bonus       string
}

type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// NoOpProvider renders nothing. The reader is empty but never nil, so
// callers that drain it do not have to special-case the no-op.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}
