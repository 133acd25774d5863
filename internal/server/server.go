package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/billdesk/internal/cart"
	cartdomain "github.com/smallbiznis/billdesk/internal/cart/domain"
	"github.com/smallbiznis/billdesk/internal/catalog"
	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	"github.com/smallbiznis/billdesk/internal/config"
	"github.com/smallbiznis/billdesk/internal/export"
	"github.com/smallbiznis/billdesk/internal/ledger"
	ledgerdomain "github.com/smallbiznis/billdesk/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	catalog.Module,
	cart.Module,
	ledger.Module,
	export.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CorrelationMiddleware())
	r.Use(AccessLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	profile    *config.ProfileHolder
	catalogSvc catalogdomain.Service
	cartSvc    cartdomain.Service
	ledgerSvc  ledgerdomain.Service
	exportSvc  export.Service
}

type ServerParams struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Profile    *config.ProfileHolder
	CatalogSvc catalogdomain.Service
	CartSvc    cartdomain.Service
	LedgerSvc  ledgerdomain.Service
	ExportSvc  export.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Engine,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		profile:    p.Profile,
		catalogSvc: p.CatalogSvc,
		cartSvc:    p.CartSvc,
		ledgerSvc:  p.LedgerSvc,
		exportSvc:  p.ExportSvc,
	}
	s.RegisterAPIRoutes()
	return s
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.POST("/products/:id/purchase", s.PurchaseStock)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.DELETE("/products", s.ClearProducts)
	api.GET("/categories", s.ListCategories)

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:id", s.UpdateCartItem)
	api.DELETE("/cart/items/:id", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	api.POST("/invoices", s.FinalizeInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/summary", s.InvoiceSummary)
	api.GET("/invoices/:id", s.GetInvoice)
	api.GET("/invoices/:id/json", s.DownloadInvoiceJSON)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
	api.POST("/invoices/export-all", s.BulkExport)
	api.DELETE("/invoices", s.ClearInvoices)

	api.POST("/backup", s.Backup)

	api.GET("/profile", s.GetProfile)
}

func (s *Server) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.profile.Get()})
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
