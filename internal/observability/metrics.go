package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ingestion collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	IngestRuns      prometheus.Counter
	CategoryFetches *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	ProductsTotal   *prometheus.CounterVec
	RowsSkipped     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		IngestRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stcatalog_ingest_runs_total",
			Help: "Total ingestion runs started",
		}),
		CategoryFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stcatalog_category_fetches_total",
			Help: "Category fetches by outcome",
		}, []string{"category", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stcatalog_category_fetch_seconds",
			Help:    "Time spent fetching one category",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		ProductsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stcatalog_products_ingested_total",
			Help: "Products emitted by ingestion",
		}, []string{"category"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stcatalog_rows_skipped_total",
			Help: "Data rows skipped as inactive or unnamed",
		}, []string{"category"}),
	}
	m.registry.MustRegister(m.IngestRuns, m.CategoryFetches, m.FetchDuration, m.ProductsTotal, m.RowsSkipped)
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.IngestRuns.Inc()
}

func (m *Metrics) FetchObserved(category string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CategoryFetches.WithLabelValues(category, outcome).Inc()
	m.FetchDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}

func (m *Metrics) RowsObserved(category string, mapped, skipped int) {
	if m == nil {
		return
	}
	m.ProductsTotal.WithLabelValues(category).Add(float64(mapped))
	m.RowsSkipped.WithLabelValues(category).Add(float64(skipped))
}
