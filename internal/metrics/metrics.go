package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_bookings_total",
			Help: "Total number of booking attempts",
		},
		[]string{"result"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SlotConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtslot_slot_conflicts_total",
			Help: "Booking attempts rejected because a slot was already taken",
		},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_signups_total",
			Help: "Total number of user signups",
		},
		[]string{"provider"},
	)

	StatsCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtslot_stats_cache_requests_total",
			Help: "Admin stats cache lookups",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(result string) {
	BookingsTotal.WithLabelValues(result).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordSlotConflict() {
	SlotConflictsTotal.Inc()
}

func RecordSignup(provider string) {
	SignupsTotal.WithLabelValues(provider).Inc()
}

func RecordStatsCache(result string) {
	StatsCacheRequests.WithLabelValues(result).Inc()
}
