package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hotelbook",
		Name:      "reservations_created_total",
		Help:      "Number of reservations created.",
	})

	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hotelbook",
		Name:      "reservation_conflicts_total",
		Help:      "Number of reservation writes rejected because the room was already held.",
	})

	ReservationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hotelbook",
		Name:      "reservation_transitions_total",
		Help:      "Reservation status changes by target status.",
	}, []string{"status"})

	TxRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hotelbook",
		Name:      "booking_tx_retries_total",
		Help:      "Booking transactions retried after serialization or deadlock failures.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hotelbook",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

// Middleware đo thời gian xử lý theo route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler trả về handler cho /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
