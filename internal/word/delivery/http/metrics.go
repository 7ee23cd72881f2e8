package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported by the wordbook service
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	favorites      prometheus.Gauge
	quizGraded     prometheus.Counter
	quizAnswers    *prometheus.CounterVec
}

// NewMetrics creates the wordbook collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordbook_requests_total",
				Help: "Total number of requests to the wordbook service",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordbook_request_duration_seconds",
				Help:    "Duration of wordbook requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		favorites: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordbook_favorites",
				Help: "Number of entries in the favorites list",
			},
		),
		quizGraded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordbook_quiz_graded_total",
				Help: "Total number of graded quiz submissions",
			},
		),
		quizAnswers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordbook_quiz_answers_total",
				Help: "Total number of graded quiz answers by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.requestCounter, m.requestLatency, m.favorites, m.quizGraded, m.quizAnswers)
	return m
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (m *Metrics) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func (m *Metrics) setFavorites(n int) {
	m.favorites.Set(float64(n))
}

func (m *Metrics) observeQuiz(correct, incorrect int) {
	m.quizGraded.Inc()
	m.quizAnswers.WithLabelValues("correct").Add(float64(correct))
	m.quizAnswers.WithLabelValues("incorrect").Add(float64(incorrect))
}
