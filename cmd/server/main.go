package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mira/gradekeeper/internal/api"
	"github.com/mira/gradekeeper/internal/config"
	"github.com/mira/gradekeeper/internal/db"
	"github.com/mira/gradekeeper/internal/gradestore"
	"github.com/mira/gradekeeper/internal/logger"
	"github.com/mira/gradekeeper/internal/repository/sqlite"
	"github.com/mira/gradekeeper/internal/services"
	"github.com/mira/gradekeeper/internal/telemetry"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Gradekeeper Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("analytics_url=%s", cfg.AnalyticsURL)
	log.Debug("analytics_queue_size=%d", cfg.AnalyticsQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())

	// Telemetry is optional; without an endpoint events are discarded.
	var emitter telemetry.Emitter = telemetry.Nop{}
	var dispatcher *telemetry.Dispatcher
	if cfg.AnalyticsURL != "" {
		dispatcher = telemetry.NewDispatcher(telemetry.NewClient(cfg.AnalyticsURL), cfg.AnalyticsQueueSize)
		dispatcher.Start(ctx)
		emitter = dispatcher
	}

	kv := sqlite.NewKVStore(database.DB)
	store := gradestore.New(kv, emitter)
	gradeService := services.NewGradeService(store, emitter)

	srv := &api.Server{GradeService: gradeService}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	cancel()
	if dispatcher != nil {
		log.Debug("stopping telemetry dispatcher")
		dispatcher.Stop()
	}

	log.Info("===========================================")
	log.Info("Gradekeeper Server Stopped")
	log.Info("===========================================")
}
