package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gitaudit"

// Metrics holds the audit instruments on a private registry so several
// instances can coexist in one process.
type Metrics struct {
	registry      *prometheus.Registry
	auditsTotal   *prometheus.CounterVec
	auditDuration prometheus.Histogram
	authors       prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		auditsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_total",
			Help:      "Finished audits by outcome.",
		}, []string{"status"}),
		auditDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_duration_seconds",
			Help:      "Wall time of an audit including clone and history traversals.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		authors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_authors",
			Help:      "Authors evaluated per successful audit.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	m.registry.MustRegister(
		m.auditsTotal,
		m.auditDuration,
		m.authors,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveAudit records one finished audit. authors is ignored for failures.
func (m *Metrics) ObserveAudit(status string, duration time.Duration, authors int) {
	m.auditsTotal.WithLabelValues(status).Inc()
	m.auditDuration.Observe(duration.Seconds())
	if status == "completed" {
		m.authors.Observe(float64(authors))
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
