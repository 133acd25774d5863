package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, invoice InvoiceData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		Build()

	m := maroto.New(cfg)

	// Header: business block left, invoice identity right.
	m.AddRow(34,
		col.New(7).Add(
			text.New(invoice.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.New(invoice.CompanyAddress, props.Text{Size: 8, Top: 8}),
			text.New(contactLine(invoice.CompanyPhone, invoice.CompanyEmail), props.Text{Size: 8, Top: 16}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
			text.New("# "+invoice.InvoiceNumber, props.Text{Size: 10, Top: 9, Align: align.Right}),
			text.New("Balance "+invoice.Balance, props.Text{Size: 12, Style: fontstyle.Bold, Top: 16, Align: align.Right}),
		),
	)

	// Bill To and invoice meta.
	m.AddRow(30,
		col.New(6).Add(
			text.New("Bill To", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(invoice.BillToName, props.Text{Size: 10, Style: fontstyle.Bold, Top: 5}),
			text.New(billToPhone(invoice.BillToPhone), props.Text{Size: 8, Top: 11}),
			text.New(invoice.BillToAddress, props.Text{Size: 8, Top: 16}),
		),
		col.New(6).Add(
			text.New("Invoice Date : "+invoice.IssueDate, props.Text{Size: 9, Align: align.Right}),
			text.New("Terms : "+invoice.Terms, props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)

	// Table header.
	m.AddRow(9,
		text.NewCol(1, "S.no", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
		text.NewCol(3, "Item & Description", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
		text.NewCol(2, "MRP", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Rate (DP)", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(1, "BV", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center}),
	)

	for i, item := range invoice.Items {
		m.AddRow(8,
			text.NewCol(1, fmt.Sprintf("%d", i+1), props.Text{Size: 8, Align: align.Center}),
			text.NewCol(3, item.Description, props.Text{Size: 8}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 8, Align: align.Center}),
			text.NewCol(2, item.MRP, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, item.Bonus, props.Text{Size: 8, Align: align.Center}),
		)
	}

	// Totals block, right aligned.
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Sub Total", props.Text{Size: 9}),
		text.NewCol(2, invoice.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total BV", props.Text{Size: 9}),
		text.NewCol(2, invoice.TotalBonus, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, invoice.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Balance", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, invoice.Balance, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	// Footer contact line.
	m.AddRow(12,
		text.NewCol(4, invoice.CompanyName, props.Text{Size: 8, Align: align.Left, Top: 4}),
		text.NewCol(4, contactLine(invoice.CompanyPhone, invoice.CompanyEmail), props.Text{Size: 8, Align: align.Center, Top: 4}),
		text.NewCol(4, invoice.CompanyAddress, props.Text{Size: 7, Align: align.Right, Top: 4}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func contactLine(phone, email string) string {
	switch {
	case phone != "" && email != "":
		return phone + "  ·  " + email
	case phone != "":
		return phone
	default:
		return email
	}
}

func billToPhone(phone string) string {
	if phone == "" {
		return ""
	}
	return "Phone: " + phone
}
