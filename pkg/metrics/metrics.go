package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingOutcomes     *prometheus.CounterVec
	KVOperationDuration *prometheus.HistogramVec
	KVOperationErrors   *prometheus.CounterVec
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Booking requests by outcome (created, slot_full, rate_limited, ...)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		KVOperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "kv_operation_duration_seconds",
			Help:        "Key-value store operation duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		KVOperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "kv_operation_errors_total",
			Help:        "Key-value store operation errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// ObserveBookingOutcome инкрементирует счетчик результатов бронирования
func (m *Metrics) ObserveBookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(outcome).Inc()
}
