package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	"github.com/smallbiznis/billdesk/internal/clock"
	"github.com/smallbiznis/billdesk/internal/config"
	ledgerdomain "github.com/smallbiznis/billdesk/internal/ledger/domain"
	"github.com/smallbiznis/billdesk/internal/metrics"
	"github.com/smallbiznis/billdesk/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockPDFProvider struct {
	mock.Mock
}

func (m *mockPDFProvider) GenerateInvoice(ctx context.Context, data pdf.InvoiceData) (io.Reader, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.Reader), args.Error(1)
}

func setupExport(t *testing.T, provider pdf.Provider) (Service, string) {
	dir := t.TempDir()
	svc := New(Params{
		Cfg:     config.Config{ExportDir: dir},
		Log:     zap.NewNop(),
		Profile: config.NewStaticProfileHolder(config.DefaultBusinessProfile()),
		PDF:     provider,
		Clock:   clock.NewFakeClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
		Metrics: metrics.New(metrics.NewRegistry()),
	})
	return svc, dir
}

func sampleInvoice(id string) ledgerdomain.InvoiceResponse {
	return ledgerdomain.InvoiceResponse{
		ID:       id,
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Customer: ledgerdomain.Customer{Name: "Asha", Phone: "98765"},
		Items: []ledgerdomain.ItemResponse{
			{ProductID: 1, Name: "Protein", Qty: 2, Price: 90, MRP: 100, BV: 2},
		},
		Subtotal:   180,
		TotalBonus: 4,
		Paid:       100,
		Balance:    80,
	}
}

func TestInvoiceJSONWritesDocument(t *testing.T) {
	svc, dir := setupExport(t, &pdf.NoOpProvider{})

	path, err := svc.InvoiceJSON(context.Background(), sampleInvoice("INV-14600000"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-14600000.json"), path)

	body, err := os.ReadFile(path)
	assert.NoError(t, err)

	var doc map[string]any
	assert.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "INV-14600000", doc["id"])
	assert.Equal(t, "Asha", doc["customer"].(map[string]any)["name"])
	assert.Equal(t, 180.0, doc["subtotal"])
	assert.Equal(t, 4.0, doc["totalBv"])
	assert.Equal(t, 80.0, doc["balance"])
	assert.Len(t, doc["items"], 1)
}

func TestInvoicePDFWritesRenderedBody(t *testing.T) {
	provider := &mockPDFProvider{}
	provider.On("GenerateInvoice", mock.Anything, mock.Anything).
		Return(bytes.NewReader([]byte("%PDF-fake")), nil)
	svc, dir := setupExport(t, provider)

	path, err := svc.InvoicePDF(context.Background(), sampleInvoice("INV-14600000"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-14600000.pdf"), path)

	body, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), body)
	provider.AssertExpectations(t)
}

func TestInvoicePDFRenderFailure(t *testing.T) {
	provider := &mockPDFProvider{}
	provider.On("GenerateInvoice", mock.Anything, mock.Anything).
		Return(nil, errors.New("render_failed"))
	svc, dir := setupExport(t, provider)

	_, err := svc.InvoicePDF(context.Background(), sampleInvoice("INV-14600000"))
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "INV-14600000.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBulkPDFSkipsFailedInvoices(t *testing.T) {
	provider := &mockPDFProvider{}
	provider.On("GenerateInvoice", mock.Anything, mock.MatchedBy(func(d pdf.InvoiceData) bool {
		return d.InvoiceNumber == "INV-2"
	})).Return(nil, errors.New("render_failed"))
	provider.On("GenerateInvoice", mock.Anything, mock.Anything).
		Return(bytes.NewReader([]byte("%PDF-fake")), nil)
	svc, dir := setupExport(t, provider)

	result, err := svc.BulkPDF(context.Background(), []ledgerdomain.InvoiceResponse{
		sampleInvoice("INV-1"),
		sampleInvoice("INV-2"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Exported)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, filepath.Join(dir, "all_invoices_1705314600000.zip"), result.Path)

	zr, err := zip.OpenReader(result.Path)
	assert.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 1)
	assert.Equal(t, "INV-1.pdf", zr.File[0].Name)
}

func TestInvoicePDFWithNoOpProvider(t *testing.T) {
	svc, dir := setupExport(t, &pdf.NoOpProvider{})

	path, err := svc.InvoicePDF(context.Background(), sampleInvoice("INV-14600000"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-14600000.pdf"), path)

	body, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Empty(t, body)
}

// blockingProvider parks the first render until released, so a test
// can hold an export mid-flight.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
}

func (p *blockingProvider) GenerateInvoice(ctx context.Context, data pdf.InvoiceData) (io.Reader, error) {
	close(p.entered)
	<-p.release
	return bytes.NewReader([]byte("%PDF-fake")), nil
}

func TestBulkPDFRejectsConcurrentRun(t *testing.T) {
	provider := &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, _ := setupExport(t, provider)

	done := make(chan error, 1)
	go func() {
		_, err := svc.BulkPDF(context.Background(), []ledgerdomain.InvoiceResponse{
			sampleInvoice("INV-1"),
		})
		done <- err
	}()

	<-provider.entered
	_, err := svc.BulkPDF(context.Background(), []ledgerdomain.InvoiceResponse{
		sampleInvoice("INV-2"),
	})
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(provider.release)
	assert.NoError(t, <-done)
}

func TestBulkPDFNothingToExport(t *testing.T) {
	svc, _ := setupExport(t, &pdf.NoOpProvider{})

	_, err := svc.BulkPDF(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestBulkPDFAllFailedRemovesArchive(t *testing.T) {
	provider := &mockPDFProvider{}
	provider.On("GenerateInvoice", mock.Anything, mock.Anything).
		Return(nil, errors.New("render_failed"))
	svc, dir := setupExport(t, provider)

	_, err := svc.BulkPDF(context.Background(), []ledgerdomain.InvoiceResponse{
		sampleInvoice("INV-1"),
	})
	assert.ErrorIs(t, err, ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackupWritesBothDocuments(t *testing.T) {
	svc, dir := setupExport(t, &pdf.NoOpProvider{})

	products := []catalogdomain.Product{
		{ID: 1, Name: "Protein", ListPrice: 100, DealerPrice: 90, BonusValue: 2, Stock: 3},
	}
	invoices := []ledgerdomain.InvoiceResponse{sampleInvoice("INV-14600000")}

	result, err := svc.Backup(context.Background(), products, invoices)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "products_1705314600000.json"), result.ProductsPath)
	assert.Equal(t, filepath.Join(dir, "invoices_1705314600000.json"), result.InvoicesPath)

	body, err := os.ReadFile(result.ProductsPath)
	assert.NoError(t, err)
	var docs []map[string]any
	assert.NoError(t, json.Unmarshal(body, &docs))
	assert.Len(t, docs, 1)
	assert.Equal(t, 100.0, docs[0]["mrp"])
	assert.Equal(t, 90.0, docs[0]["price"])
}
