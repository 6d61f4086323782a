package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"suicidestats/internal/config"
	"suicidestats/internal/container"
	"suicidestats/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	logger := appContainer.Logger
	logger.Info("Analysing %q from %s", appConfig.Data.Country, appConfig.Data.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := appContainer.ReportService.Run(ctx, os.Stdout)
	if err != nil {
		logger.Error("[%s] %v", errors.GetCode(err), err)
		stop()
		os.Exit(1)
	}

	for _, path := range result.ChartPaths {
		logger.Debug("Chart written: %s", path)
	}
}
