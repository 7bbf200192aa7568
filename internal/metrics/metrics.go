package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pool_calc"

// Middleware считает запросы и задержку по коду, методу и шаблону пути
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMiddleware(name string) *Middleware {
	var m Middleware
	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "chi_requests_total",
			Help:        "Number of HTTP requests partitioned by status code, method and HTTP path.",
			ConstLabels: prometheus.Labels{"service": name},
		}, []string{"code", "method", "path"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "chi_request_duration_milliseconds",
		Help:        "Time spent on the request partitioned by status code, method and HTTP path.",
		ConstLabels: prometheus.Labels{"service": name},
		Buckets:     []float64{5, 25, 100, 500, 1000},
	}, []string{"code", "method", "path"})

	return &m
}

func (m Middleware) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rp := rctx.RoutePattern()
			code := strconv.Itoa(ww.Status())
			m.requests.WithLabelValues(code, r.Method, rp).Inc()
			m.latency.WithLabelValues(code, r.Method, rp).Observe(float64(time.Since(start).Milliseconds()))
		}
	}
	return http.HandlerFunc(fn)
}

func (m Middleware) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.latency}
}

// Wizard — доменные счётчики мастера
type Wizard struct {
	Estimates          prometheus.Counter
	EstimateTotal      prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
}

func NewWizard() *Wizard {
	return &Wizard{
		Estimates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Number of finalized pool estimates.",
		}),
		EstimateTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_amount_usd",
			Help:      "Final total of finalized estimates.",
			Buckets:   []float64{10000, 25000, 50000, 75000, 100000, 150000},
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_validation_failures_total",
			Help:      "Blocked next-step attempts partitioned by wizard step.",
		}, []string{"step"}),
	}
}

// ObserveEstimate — учёт финальной сметы
func (w *Wizard) ObserveEstimate(total int64) {
	if w == nil {
		return
	}
	w.Estimates.Inc()
	w.EstimateTotal.Observe(float64(total))
}

// ObserveValidationFailure — заблокированный переход вперёд
func (w *Wizard) ObserveValidationFailure(step int) {
	if w == nil {
		return
	}
	w.ValidationFailures.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (w *Wizard) Collectors() []prometheus.Collector {
	return []prometheus.Collector{w.Estimates, w.EstimateTotal, w.ValidationFailures}
}
