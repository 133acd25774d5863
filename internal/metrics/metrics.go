package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	InvoicesFinalized prometheus.Counter
	ExportArtifacts   *prometheus.CounterVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		InvoicesFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billdesk_invoices_finalized_total",
			Help: "Invoices committed to the ledger.",
		}),
		ExportArtifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billdesk_export_artifacts_total",
			Help: "Export artifacts produced, by kind and status.",
		}, []string{"kind", "status"}),
	}
	reg.MustRegister(m.InvoicesFinalized, m.ExportArtifacts)
	return m
}

var Module = fx.Module("metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)
