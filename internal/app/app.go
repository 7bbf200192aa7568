package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"pool-calc-backend/internal/config"
	"pool-calc-backend/internal/handlers"
	"pool-calc-backend/internal/metrics"
)

type App struct {
	router   http.Handler
	Env      *handlers.Env
	Registry *prometheus.Registry
}

// New собирает приложение. db может быть nil — тогда каталог, настройки
// и счётчики живут в памяти.
func New(ctx context.Context, cfg *config.Config, db *sql.DB, logger *zap.Logger) (*App, error) {
	log := zap.S().Named("app")

	// 1. Базовый каталог: файл или значения из кода
	catalog, err := config.LoadCatalogOrDefault(cfg.Service.CatalogFile)
	if err != nil {
		return nil, err
	}

	// 2. Схема БД, засев и загрузка каталога
	if db != nil {
		if err := ensureSchema(ctx, db); err != nil {
			return nil, errors.Wrap(err, "ensure schema")
		}
		if err := seedCatalog(ctx, db, catalog); err != nil {
			return nil, err
		}
		stored, err := loadCatalog(ctx, db)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			catalog = stored
		}
		log.Info("catalog loaded from database")
	}

	env := handlers.NewEnv(db, catalog)
	env.AdminPasswordHash = cfg.Service.AdminPasswordHash
	env.TelegramBotToken = cfg.Telegram.BotToken
	env.TelegramChatID = cfg.Telegram.ChatID
	env.Metrics = metrics.NewWizard()

	if env.AdminPasswordHash == "" {
		log.Warn("POOLCALC_ADMIN_PASSWORD_HASH is empty, admin endpoints are disabled")
	}

	httpMetrics := metrics.NewMiddleware("pool-calc")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(httpMetrics.Collectors()...)
	reg.MustRegister(env.Metrics.Collectors()...)

	return &App{
		router:   newRouter(env, reg, httpMetrics, logger, cfg.Service.AllowedOrigins),
		Env:      env,
		Registry: reg,
	}, nil
}

func (a *App) Router() http.Handler {
	return a.router
}
