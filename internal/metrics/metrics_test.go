package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWizard_NilSafe(t *testing.T) {
	var w *Wizard
	assert.NotPanics(t, func() {
		w.ObserveEstimate(41500)
		w.ObserveValidationFailure(1)
	})
}

func TestWizard_Observe(t *testing.T) {
	w := NewWizard()
	w.ObserveEstimate(41500)
	w.ObserveEstimate(56400)
	w.ObserveValidationFailure(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(w.Estimates))
	assert.Equal(t, 1.0, testutil.ToFloat64(w.ValidationFailures.WithLabelValues("4")))
	assert.Equal(t, 0.0, testutil.ToFloat64(w.ValidationFailures.WithLabelValues("1")))
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := NewMiddleware("test")

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("418", http.MethodGet, "/api/items/{id}")))
}
