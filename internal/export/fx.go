package export

import (
	"github.com/smallbiznis/billdesk/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("export.service",
	pdf.Module,
	fx.Provide(New),
)
