package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adscope/internal/delivery"
	"adscope/internal/infrastructure"
	"adscope/internal/usecase"
	"adscope/pkg/config"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.New()

	sessions := infrastructure.NewSessionRepository(log)

	reportService := usecase.NewReportService(sessions, log, m)
	analysisService := usecase.NewAnalysisService(sessions, log, m)
	metricsService := usecase.NewMetricsService(sessions, log, m)
	exportService := usecase.NewExportService(sessions, log, m)

	handlers := delivery.NewHTTPHandlers(
		reportService,
		analysisService,
		metricsService,
		exportService,
		cfg,
		log,
		m,
	)
	router := delivery.NewHTTPRouter(handlers, cfg, log, m)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}

	log.Info("Server stopped")
}
