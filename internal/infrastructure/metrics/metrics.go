package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionDuration   prometheus.Histogram
	TransactionAmount     prometheus.Histogram
	TransactionErrors     *prometheus.CounterVec
	FeesCharged           prometheus.Counter
	BusyRetries           prometheus.Counter

	// Account metrics
	AccountsOpened *prometheus.CounterVec
	AccountsClosed *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "custodyledger_transactions_processed_total",
				Help: "Total number of transactions processed by kind",
			},
			[]string{"kind"},
		),
		TransactionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "custodyledger_transaction_duration_seconds",
			Help:    "Duration of transaction processing including retries",
			Buckets: prometheus.DefBuckets,
		}),
		TransactionAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "custodyledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "custodyledger_transaction_errors_total",
				Help: "Total number of rejected transactions by error kind",
			},
			[]string{"error_type"},
		),
		FeesCharged: factory.NewCounter(prometheus.CounterOpts{
			Name: "custodyledger_fees_charged_total",
			Help: "Sum of fees charged on processed transactions",
		}),
		BusyRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "custodyledger_busy_retries_total",
			Help: "Transaction attempts retried after lock contention",
		}),

		AccountsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "custodyledger_accounts_opened_total",
				Help: "Total number of accounts opened by kind",
			},
			[]string{"kind"},
		),
		AccountsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "custodyledger_accounts_closed_total",
				Help: "Total number of accounts closed by kind",
			},
			[]string{"kind"},
		),

		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "custodyledger_outbox_published_total",
			Help: "Outbox events delivered to the publisher",
		}),
		OutboxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "custodyledger_outbox_errors_total",
			Help: "Outbox events that failed to publish",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "custodyledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "custodyledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "custodyledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}
