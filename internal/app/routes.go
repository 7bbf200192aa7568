package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pool-calc-backend/internal/handlers"
	"pool-calc-backend/internal/log"
	"pool-calc-backend/internal/metrics"
)

func newRouter(env *handlers.Env, reg *prometheus.Registry, m *metrics.Middleware, logger *zap.Logger, origins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(
		m.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         300,
		}),
		middleware.RequestID,
		log.Logger(logger, "router"),
		middleware.Recoverer,
	)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	router.Route("/api", func(r chi.Router) {
		// каталог опций мастера (POST — только админ)
		r.HandleFunc("/pool/config", env.HandlePoolConfig)
		// команды мастера, сессию хранит клиент
		r.HandleFunc("/pool/wizard", env.HandleWizard)
		// смета по готовому выбору
		r.HandleFunc("/pool/estimate", env.HandleEstimate)
		r.HandleFunc("/pool/estimate/pdf", env.HandleEstimatePDF)
		r.HandleFunc("/stats", env.HandleStats)

		// настройки для администратора (Telegram)
		r.HandleFunc("/admin/settings", env.HandleAdminSettings)
	})

	return router
}
