package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Income metrics
	ClaimsPaid     prometheus.Counter
	ClaimsDeferred prometheus.Counter
	IncomePaid     prometheus.Counter
	DaysForfeited  prometheus.Counter
	DecayBurned    prometheus.Counter
	ClaimDuration  prometheus.Histogram
	ClaimErrors    *prometheus.CounterVec

	// Share metrics
	SharePayouts     prometheus.Counter
	ShareRegistryOps *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Token metrics
	TokensCreated prometheus.Counter
	TokensIssued  prometheus.Counter
	TokensRetired prometheus.Counter
	TokensBurned  prometheus.Counter
	TokenSupply   *prometheus.GaugeVec

	// Balance metrics
	BalancesOpened prometheus.Counter
	BalancesClosed prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Income metrics
		ClaimsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_claims_paid_total",
			Help: "Total number of claims that paid income",
		}),
		ClaimsDeferred: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_claims_deferred_total",
			Help: "Total number of claims that paid nothing",
		}),
		IncomePaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_income_paid_units_total",
			Help: "Total income paid out in base units",
		}),
		DaysForfeited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_days_forfeited_total",
			Help: "Total income days forfeited past the back-pay ceiling",
		}),
		DecayBurned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_decay_burned_units_total",
			Help: "Total base units burned by demurrage",
		}),
		ClaimDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ubiledger_claim_duration_seconds",
			Help:    "Duration of claim operations",
			Buckets: prometheus.DefBuckets,
		}),
		ClaimErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_claim_errors_total",
				Help: "Total number of claim errors by type",
			},
			[]string{"error_type"},
		),

		// Share metrics
		SharePayouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_share_payouts_total",
			Help: "Total number of share payouts to beneficiaries",
		}),
		ShareRegistryOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_share_registry_operations_total",
				Help: "Total share registry operations by type",
			},
			[]string{"operation"},
		),

		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ubiledger_transfer_amount",
			Help:    "Transfer amounts in base units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Token metrics
		TokensCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_tokens_created_total",
			Help: "Total number of tokens created",
		}),
		TokensIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_tokens_issued_total",
			Help: "Total number of issue operations",
		}),
		TokensRetired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_tokens_retired_total",
			Help: "Total number of retire operations",
		}),
		TokensBurned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_tokens_burned_total",
			Help: "Total number of burn operations",
		}),
		TokenSupply: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ubiledger_token_supply_units",
				Help: "Current circulating supply in base units",
			},
			[]string{"symbol"},
		),

		// Balance metrics
		BalancesOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_balances_opened_total",
			Help: "Total number of balance rows opened",
		}),
		BalancesClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_balances_closed_total",
			Help: "Total number of balance rows closed",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ubiledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ubiledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ubiledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_events_published_total",
			Help: "Total outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubiledger_event_publish_errors_total",
			Help: "Total outbox publish failures",
		}),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ubiledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
