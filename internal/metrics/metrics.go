package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberpay_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memberpay_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberpay_topups_total",
			Help: "Total number of balance top-ups",
		},
	)

	TopUpAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memberpay_topup_amount_total",
			Help: "Total amount credited through top-ups",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberpay_payments_total",
			Help: "Total number of service payments by outcome",
		},
		[]string{"outcome"},
	)

	ReceiptsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberpay_receipts_queued_total",
			Help: "Total number of receipt emails queued",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTopUp(amount int64) {
	TopUpsTotal.Inc()
	TopUpAmountTotal.Add(float64(amount))
}

func RecordPayment(outcome string) {
	PaymentsTotal.WithLabelValues(outcome).Inc()
}

func RecordReceipt(receiptType, status string) {
	ReceiptsQueuedTotal.WithLabelValues(receiptType, status).Inc()
}
