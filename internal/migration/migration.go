package migration

import (
	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
	ledgerdomain "github.com/smallbiznis/billdesk/internal/ledger/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Run creates the schema on startup so the application is usable out
// of the box for local installs.
func Run(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&catalogdomain.Product{},
		&ledgerdomain.Invoice{},
		&ledgerdomain.InvoiceLine{},
	)
}

var Module = fx.Module("migrations",
	fx.Invoke(Run),
)
