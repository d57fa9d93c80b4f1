package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderdesk_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route pattern and status code.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "code"},
	)

	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderdesk_db_query_duration_seconds",
		Help:    "Latency of database queries by sqlc query name.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	},
		[]string{"query", "outcome"},
	)

	ReturnRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_return_requests_total",
		Help: "Return requests submitted to the carrier, by mode (single|bulk) and outcome.",
	},
		[]string{"mode", "outcome"},
	)

	CarrierRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderdesk_carrier_request_duration_seconds",
		Help:    "Latency of carrier API calls by operation.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"operation", "outcome"},
	)

	UpstreamOrdersFetched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orderdesk_upstream_orders",
		Help: "Number of orders in the last upstream snapshot.",
	})

	OrdersImportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderdesk_orders_imported_total",
		Help: "Orders saved through CSV import.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_operation_errors_total",
		Help: "Errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObserveDBQuery(name string, elapsed time.Duration, err error) {
	DBQueryDuration.WithLabelValues(name, outcome(err)).Observe(elapsed.Seconds())
}

func ObserveCarrier(operation string, start time.Time, err error) {
	CarrierRequestDuration.WithLabelValues(operation, outcome(err)).Observe(time.Since(start).Seconds())
}

func CountReturn(mode string, err error) {
	ReturnRequestsTotal.WithLabelValues(mode, outcome(err)).Inc()
}

func CountError(operation string) {
	OperationErrorsTotal.WithLabelValues(operation).Inc()
}

func ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
