package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/anomalydash/internal/backend"
	"github.com/hamed0406/anomalydash/internal/config"
	"github.com/hamed0406/anomalydash/internal/httpapi"
	"github.com/hamed0406/anomalydash/internal/logging"
	"github.com/hamed0406/anomalydash/internal/refresher"
	"github.com/hamed0406/anomalydash/internal/state"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	store := state.New()

	rf := refresher.New(logger, client, store, cfg.RefreshInterval, cfg.HTTPTimeout)
	go rf.Run(ctx)

	api := httpapi.NewServer(logger, client, store, rf, cfg.ExportBase, cfg.MaxUploadMB<<20)
	router := api.Router(cfg.AdminAPIKeys, cfg.PublicRPM, cfg.PublicBurst, cfg.AdminRPM, cfg.AdminBurst)

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Info("dashboard_listen",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.BackendURL),
		zap.Duration("refresh_interval", cfg.RefreshInterval),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
