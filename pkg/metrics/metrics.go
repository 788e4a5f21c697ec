package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HistogramBuckets covers the latency range we care about, from fast
// handler responses through slow gateway round-trips.
var HistogramBuckets = []float64{
	// fast responses (0 - 500ms)
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	// medium responses (500ms - 2s)
	750, 1000, 1250, 1500, 1750, 2000,
	// slow responses (2s - 15s)
	2500, 3000, 4000, 5000, 7500, 10000, 15000,
	// extended range for gateway timeouts (15s - 120s)
	20000, 30000, 45000, 60000, 75000, 90000, 120000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates a prometheus.Collector based on Metric.Type. Only
// the vector types the HTTP middleware registers are supported.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	var metric prometheus.Collector
	switch m.Type {
	case "counter_vec":
		metric = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "histogram_vec":
		metric = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
				Buckets:   HistogramBuckets,
			},
			m.Args,
		)
	case "summary_vec":
		metric = prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	}
	return metric
}

// PaymentReconcileDur observes payment confirmation latency partitioned
// by outcome (reconciled, replayed, unpaid, error).
var PaymentReconcileDur = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: "marketplace",
		Name:      "payment_reconcile_dur_ms",
		Help:      "Payment confirmation latency in milliseconds.",
		Buckets:   HistogramBuckets,
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(PaymentReconcileDur)
}

const (
	RefererKey = "X-Referer"
)
