package main

import (
	"fmt"
	"os"

	"adprofit/internal/delivery"
	"adprofit/internal/infrastructure"
	"adprofit/internal/usecase"
	"adprofit/pkg/config"
	"adprofit/pkg/logger"
	"adprofit/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.New()

	repo := infrastructure.NewAnalysisRepository(log)
	analysisService := usecase.NewAnalysisService(repo, log, m, cfg.Analysis.HistoryLimit)
	ingestService := usecase.NewIngestService(log, m, cfg.Analysis.ChangeWindowDays)

	handlers := delivery.NewHTTPHandlers(analysisService, ingestService, log)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.HTTP.RequestTimeout, cfg.HTTP.RateLimitPerSecond)

	log.WithField("port", cfg.Server.Port).Info("Starting server")
	if err := router.SetupRoutes().Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
