package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pool-calc-backend/internal/app"
	"pool-calc-backend/internal/config"
	"pool-calc-backend/internal/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	defer func() { _ = logger.Sync() }()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// строку подключения берём из env; пусто — работаем без БД
	var db *sql.DB
	if cfg.Database.URL != "" {
		db, err = app.OpenDB(ctx, cfg.Database.URL)
		if err != nil {
			zap.S().Named("server").Fatalw("failed to connect to database", "error", err)
		}
		defer db.Close()
		zap.S().Named("server").Info("DB connected")
	} else {
		zap.S().Named("server").Warn("DATABASE_URL is empty, running in memory")
	}

	a, err := app.New(ctx, cfg, db, logger)
	if err != nil {
		zap.S().Named("server").Fatalw("failed to init app", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Service.Address,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Named("server").Errorw("shutdown failed", "error", err)
		}
	}()

	zap.S().Named("server").Infof("Server listening on %s", cfg.Service.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Named("server").Fatalw("server failed", "error", err)
	}
	zap.S().Named("server").Info("server stopped")
}
