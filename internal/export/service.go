package export

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	"github.com/smallbiznis/billdesk/internal/clock"
	"github.com/smallbiznis/billdesk/internal/config"
	ledgerdomain "github.com/smallbiznis/billdesk/internal/ledger/domain"
	"github.com/smallbiznis/billdesk/internal/metrics"
	"github.com/smallbiznis/billdesk/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service produces export artifacts for already-committed state.
// Every operation is best-effort and independently retryable; nothing
// here can affect ledger or catalog state.
type Service interface {
	InvoiceJSON(ctx context.Context, inv ledgerdomain.InvoiceResponse) (string, error)
	InvoicePDF(ctx context.Context, inv ledgerdomain.InvoiceResponse) (string, error)
	BulkPDF(ctx context.Context, invs []ledgerdomain.InvoiceResponse) (*BulkResult, error)
	Backup(ctx context.Context, products []catalogdomain.Product, invs []ledgerdomain.InvoiceResponse) (*BackupResult, error)
}

type BulkResult struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`
	Failed   int    `json:"failed"`
}

type BackupResult struct {
	ProductsPath string `json:"products"`
	InvoicesPath string `json:"invoices"`
}

var (
	ErrExportInProgress = errors.New("export_in_progress")
	ErrNothingToExport  = errors.New("nothing_to_export")
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Profile *config.ProfileHolder
	PDF     pdf.Provider
	Clock   clock.Clock
	Metrics *metrics.Metrics
}

type service struct {
	dir     string
	log     *zap.Logger
	profile *config.ProfileHolder
	pdf     pdf.Provider
	clock   clock.Clock
	metrics *metrics.Metrics

	bulkRunning atomic.Bool
}

func New(p Params) Service {
	return &service{
		dir:     p.Cfg.ExportDir,
		log:     p.Log.Named("export.service"),
		profile: p.Profile,
		pdf:     p.PDF,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
}

func (s *service) InvoiceJSON(ctx context.Context, inv ledgerdomain.InvoiceResponse) (string, error) {
	body, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("json", "error").Inc()
		return "", err
	}
	path, err := s.write(inv.ID+".json", body)
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("json", "error").Inc()
		return "", err
	}
	s.metrics.ExportArtifacts.WithLabelValues("json", "ok").Inc()
	return path, nil
}

func (s *service) InvoicePDF(ctx context.Context, inv ledgerdomain.InvoiceResponse) (string, error) {
	body, err := s.render(ctx, inv)
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("pdf", "error").Inc()
		return "", err
	}
	path, err := s.write(inv.ID+".pdf", body)
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("pdf", "error").Inc()
		return "", err
	}
	s.metrics.ExportArtifacts.WithLabelValues("pdf", "ok").Inc()
	return path, nil
}

// BulkPDF renders every invoice into one archive. A failed render
// skips that invoice and the batch continues; only a batch that
// produces nothing is an error.
func (s *service) BulkPDF(ctx context.Context, invs []ledgerdomain.InvoiceResponse) (*BulkResult, error) {
	if len(invs) == 0 {
		return nil, ErrNothingToExport
	}
	if !s.bulkRunning.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer s.bulkRunning.Store(false)

	jobID := ulid.Make().String()
	log := s.log.With(zap.String("job_id", jobID))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("all_invoices_%d.zip", s.clock.Now().UnixMilli())
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(f)
	result := &BulkResult{Path: path}
	for _, inv := range invs {
		body, err := s.render(ctx, inv)
		if err != nil {
			result.Failed++
			s.metrics.ExportArtifacts.WithLabelValues("pdf", "error").Inc()
			log.Warn("invoice render failed, skipping",
				zap.String("invoice_id", inv.ID),
				zap.Error(err),
			)
			continue
		}
		entry, err := zw.Create(inv.ID + ".pdf")
		if err != nil {
			zw.Close()
			f.Close()
			os.Remove(path)
			return nil, err
		}
		if _, err := entry.Write(body); err != nil {
			zw.Close()
			f.Close()
			os.Remove(path)
			return nil, err
		}
		result.Exported++
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	if result.Exported == 0 {
		os.Remove(path)
		s.metrics.ExportArtifacts.WithLabelValues("zip", "error").Inc()
		return nil, ErrNothingToExport
	}

	s.metrics.ExportArtifacts.WithLabelValues("zip", "ok").Inc()
	log.Info("bulk export finished",
		zap.String("path", path),
		zap.Int("exported", result.Exported),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *service) Backup(ctx context.Context, products []catalogdomain.Product, invs []ledgerdomain.InvoiceResponse) (*BackupResult, error) {
	ts := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)

	productsBody, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return nil, err
	}
	invoicesBody, err := json.MarshalIndent(invs, "", "  ")
	if err != nil {
		return nil, err
	}

	productsPath, err := s.write("products_"+ts+".json", productsBody)
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("backup", "error").Inc()
		return nil, err
	}
	invoicesPath, err := s.write("invoices_"+ts+".json", invoicesBody)
	if err != nil {
		s.metrics.ExportArtifacts.WithLabelValues("backup", "error").Inc()
		return nil, err
	}

	s.metrics.ExportArtifacts.WithLabelValues("backup", "ok").Inc()
	return &BackupResult{ProductsPath: productsPath, InvoicesPath: invoicesPath}, nil
}

func (s *service) render(ctx context.Context, inv ledgerdomain.InvoiceResponse) ([]byte, error) {
	reader, err := s.pdf.GenerateInvoice(ctx, s.invoiceData(inv))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

func (s *service) invoiceData(inv ledgerdomain.InvoiceResponse) pdf.InvoiceData {
	profile := s.profile.Get()

	data := pdf.InvoiceData{
		CompanyName:    profile.Name,
		CompanyAddress: profile.Address,
		CompanyPhone:   profile.Phone,
		CompanyEmail:   profile.Email,

		InvoiceNumber: inv.ID,
		IssueDate:     inv.Date.Format("02/01/2006"),
		Terms:         "Due on Receipt",

		BillToName:    inv.Customer.Name,
		BillToPhone:   inv.Customer.Phone,
		BillToAddress: inv.Customer.Address,

		Subtotal:   FormatINR(inv.Subtotal),
		TotalBonus: FormatBV(inv.TotalBonus),
		Total:      FormatINR(inv.Subtotal),
		Balance:    FormatINR(inv.Balance),
	}

	for _, item := range inv.Items {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: item.Name,
			Qty:         item.Qty,
			MRP:         FormatINR(item.MRP),
			UnitPrice:   FormatINR(item.Price),
			Amount:      FormatINR(float64(item.Qty) * item.Price),
			Bonus:       FormatBV(float64(item.Qty) * item.BV),
		})
	}

	return data
}

func (s *service) write(name string, body []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
