// Command server runs the reporting company and beneficial owner API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	companyhandler "boiregistry/internal/company/handler"
	companyservice "boiregistry/internal/company/service"
	companystore "boiregistry/internal/company/store"
	ownerhandler "boiregistry/internal/owner/handler"
	ownerservice "boiregistry/internal/owner/service"
	ownerstore "boiregistry/internal/owner/store"
	"boiregistry/internal/platform/config"
	"boiregistry/internal/platform/httpserver"
	"boiregistry/internal/platform/logger"
	"boiregistry/internal/platform/metrics"
	"boiregistry/internal/platform/tracing"
	transporthttp "boiregistry/internal/transport/http"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log, "boiregistry", cfg.Env)
	if err != nil {
		log.Error("tracing init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Error("invalid DATABASE_URL", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.PoolMaxConns
	poolCfg.MinConns = 0
	poolCfg.MaxConnIdleTime = cfg.PoolIdleTimeout

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.PoolAcquireTimeout)
	defer cancelConnect()
	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		log.Error("database pool setup failed", "error", err)
		os.Exit(1)
	}
	if err := pool.Ping(connectCtx); err != nil {
		log.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("database connected")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	companyStore := companystore.NewPostgres(pool)
	ownerStore := ownerstore.NewPostgres(pool)

	companySvc := companyservice.New(companyStore, log)
	ownerSvc := ownerservice.New(ownerStore, companyStore, log)

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Logger:    log,
		Metrics:   m,
		Gatherer:  reg,
		Companies: companyhandler.New(companySvc, m, cfg.Production()),
		Owners:    ownerhandler.New(ownerSvc, m, cfg.Production()),
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
