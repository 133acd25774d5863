package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	ledgerdomain "github.com/smallbiznis/billdesk/internal/ledger/domain"
	"go.uber.org/zap"
)

type finalizeInvoiceRequest struct {
	Customer   ledgerdomain.Customer `json:"customer"`
	Paid       float64               `json:"paid"`
	Date       string                `json:"date"`
	Basis      string                `json:"basis"`
	SkipExport bool                  `json:"skipExport"`
}

type exportReport struct {
	JSON  string   `json:"json,omitempty"`
	PDF   string   `json:"pdf,omitempty"`
	Warns []string `json:"warnings,omitempty"`
}

// FinalizeInvoice commits the cart into a new invoice, then runs the
// export phase best-effort. Export failures are reported as warnings;
// the invoice is already durable and can be re-exported later.
func (s *Server) FinalizeInvoice(c *gin.Context) {
	var req finalizeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Paid < 0 {
		AbortWithError(c, newValidationError("paid", "invalid_paid", "paid must not be negative"))
		return
	}

	var issueDate time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			AbortWithError(c, newValidationError("date", "invalid_date", "date must be YYYY-MM-DD"))
			return
		}
		issueDate = parsed
	}

	basis, err := s.resolveBasis(req.Basis)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	inv, err := s.ledgerSvc.Finalize(c.Request.Context(), ledgerdomain.FinalizeRequest{
		Customer:   req.Customer,
		AmountPaid: req.Paid,
		IssueDate:  issueDate,
		Basis:      basis,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"data": inv}
	if !req.SkipExport {
		resp["export"] = s.exportInvoice(c, *inv)
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) exportInvoice(c *gin.Context, inv ledgerdomain.InvoiceResponse) exportReport {
	var report exportReport

	jsonPath, err := s.exportSvc.InvoiceJSON(c.Request.Context(), inv)
	if err != nil {
		s.log.Warn("invoice json export failed", zap.String("id", inv.ID), zap.Error(err))
		report.Warns = append(report.Warns, "json export failed")
	} else {
		report.JSON = jsonPath
	}

	pdfPath, err := s.exportSvc.InvoicePDF(c.Request.Context(), inv)
	if err != nil {
		s.log.Warn("invoice pdf export failed", zap.String("id", inv.ID), zap.Error(err))
		report.Warns = append(report.Warns, "pdf export failed")
	} else {
		report.PDF = pdfPath
	}

	return report
}

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.ledgerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) GetInvoice(c *gin.Context) {
	inv, err := s.ledgerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) InvoiceSummary(c *gin.Context) {
	summary, err := s.ledgerSvc.Summary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) ClearInvoices(c *gin.Context) {
	if err := s.ledgerSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}

func (s *Server) DownloadInvoiceJSON(c *gin.Context) {
	inv, err := s.ledgerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	path, err := s.exportSvc.InvoiceJSON(c.Request.Context(), *inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	inv, err := s.ledgerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	path, err := s.exportSvc.InvoicePDF(c.Request.Context(), *inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) BulkExport(c *gin.Context) {
	invoices, err := s.ledgerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.exportSvc.BulkPDF(c.Request.Context(), invoices)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) Backup(c *gin.Context) {
	products, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListRequest{})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invoices, err := s.ledgerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.exportSvc.Backup(c.Request.Context(), products, invoices)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
