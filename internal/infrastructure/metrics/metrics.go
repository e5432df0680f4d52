package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	LedgerOperations *prometheus.CounterVec
	OperationAmount  *prometheus.HistogramVec
	ReplayedEvents   *prometheus.CounterVec
	LockTimeouts     prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates and registers all Prometheus metrics on the given registerer
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaleido_coin_ledger_operations_total",
				Help: "Total ledger operations by type and outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kaleido_coin_operation_amount",
				Help:    "Coin amounts moved per operation",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
			},
			[]string{"operation"},
		),
		ReplayedEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaleido_coin_replayed_events_total",
				Help: "Total business events answered from the stream instead of applied",
			},
			[]string{"biz_type"},
		),
		LockTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "kaleido_coin_lock_timeouts_total",
			Help: "Total account lock acquisitions that timed out",
		}),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kaleido_coin_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "kaleido_coin_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kaleido_coin_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kaleido_coin_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		BalanceCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "kaleido_coin_balance_cache_hits_total",
			Help: "Total balance reads served from cache",
		}),
		BalanceCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "kaleido_coin_balance_cache_misses_total",
			Help: "Total balance reads that fell through to storage",
		}),
	}
}
