package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	MutationsTotal          *prometheus.CounterVec
	CollectionMessagesTotal *prometheus.CounterVec
	Customers               prometheus.Gauge
	PendingDebts            prometheus.Gauge
	PendingValue            prometheus.Gauge
	OverdueDebts            prometheus.Gauge
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debt_ledger_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "debt_ledger_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "debt_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		MutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debt_ledger_mutations_total",
				Help: "Total number of customer and debt mutations by outcome.",
			},
			[]string{"entity", "action", "outcome"},
		),
		CollectionMessagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debt_ledger_collection_messages_total",
				Help: "Total number of collection messages produced, by source.",
			},
			[]string{"source"},
		),
		Customers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "debt_ledger_customers",
			Help: "Number of customers in the loaded workspace.",
		}),
		PendingDebts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "debt_ledger_pending_debts",
			Help: "Number of pending debts in the loaded workspace.",
		}),
		PendingValue: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "debt_ledger_pending_value_brl",
			Help: "Sum of pending debt values in reais.",
		}),
		OverdueDebts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "debt_ledger_overdue_debts",
			Help: "Number of pending debts past their due date.",
		}),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordMutation(entity, action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	Business.MutationsTotal.WithLabelValues(entity, action, outcome).Inc()
}

func RecordCollectionMessage(source string) {
	Business.CollectionMessagesTotal.WithLabelValues(source).Inc()
}

func SetLedgerSnapshot(customers, pending int, pendingValue float64, overdue int) {
	Business.Customers.Set(float64(customers))
	Business.PendingDebts.Set(float64(pending))
	Business.PendingValue.Set(pendingValue)
	Business.OverdueDebts.Set(float64(overdue))
}
