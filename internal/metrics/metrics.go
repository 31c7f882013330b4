package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	MilestonesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_milestones_created_total",
			Help: "Milestones logged",
		},
	)

	HoursLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_hours_logged_total",
			Help: "Hours invested across all logged milestones",
		},
	)

	GoalTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_goal_transitions_total",
			Help: "Goal status transitions by target status",
		},
		[]string{"status"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(MilestonesCreated)
	prometheus.MustRegister(HoursLogged)
	prometheus.MustRegister(GoalTransitions)
}

func ObserveMilestone(hours float64) {
	MilestonesCreated.Inc()
	HoursLogged.Add(hours)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records count and latency per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
