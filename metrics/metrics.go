// Package metrics exposes the dashboard activity to Prometheus.
package metrics

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/cartera"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records reports and dispatches on its own registry.
type Collector struct {
	registry          *prometheus.Registry
	reportsComputed   prometheus.Counter
	reportDuration    prometheus.Histogram
	dispatchBatches   prometheus.Counter
	noticesSent       prometheus.Counter
	visibleAccounts   prometheus.Gauge
	visibleAmount     prometheus.Gauge
	portfolioAmount   *prometheus.GaugeVec
	portfolioAccounts *prometheus.GaugeVec
	mu                sync.Mutex
	logger            *slog.Logger
}

// NewCollector creates a collector. A nil logger means slog.Default().
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		reportsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ccs_reports_total",
			Help: "Total number of computed reports",
		}),
		reportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ccs_report_duration_seconds",
			Help:    "Time taken to filter the table and aggregate the view",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		dispatchBatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "ccs_dispatch_batches_total",
			Help: "Total number of notice dispatches",
		}),
		noticesSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "ccs_notices_sent_total",
			Help: "Total number of notices sent, an account counts once per dispatch",
		}),
		visibleAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ccs_visible_accounts",
			Help: "Number of accounts passing the current filter",
		}),
		visibleAmount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ccs_visible_amount",
			Help: "Total amount of the accounts passing the current filter",
		}),
		portfolioAmount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ccs_portfolio_amount",
			Help: "Total amount per portfolio in the current view",
		}, []string{"portfolio", "currency"}),
		portfolioAccounts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ccs_portfolio_accounts",
			Help: "Number of accounts per portfolio in the current view",
		}, []string{"portfolio"}),
		logger: logger,
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// ObserveReport records a freshly computed report, and how long it took.
// Portfolios absent from the report are reset to zero.
func (m *Collector) ObserveReport(r *cartera.Report, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reportsComputed.Inc()
	m.reportDuration.Observe(took.Seconds())
	m.visibleAccounts.Set(float64(r.TotalCount))
	m.visibleAmount.Set(r.TotalAmount.AsFloat())

	m.portfolioAmount.Reset()
	m.portfolioAccounts.Reset()
	for _, p := range cartera.AllPortfolios {
		t, _ := r.Portfolio(p)
		m.portfolioAmount.WithLabelValues(p.String(), r.Currency).Set(t.Amount.AsFloat())
		m.portfolioAccounts.WithLabelValues(p.String()).Set(float64(t.Count))
	}
}

// ObserveDispatch records a notice dispatch.
func (m *Collector) ObserveDispatch(b cartera.Batch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dispatchBatches.Inc()
	m.noticesSent.Add(float64(b.Count))
	m.logger.Debug("dispatch recorded", slog.String("batch", b.ID.String()), slog.Int("count", b.Count))
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
