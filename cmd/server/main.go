package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/config"
	"github.com/Azahir21/track-pendapatan-bot/internal/repository/mongodb"
	"github.com/Azahir21/track-pendapatan-bot/internal/repository/sheets"
	"github.com/Azahir21/track-pendapatan-bot/internal/scheduler"
	"github.com/Azahir21/track-pendapatan-bot/internal/server/handlers"
	"github.com/Azahir21/track-pendapatan-bot/internal/server/router"
	commandsvc "github.com/Azahir21/track-pendapatan-bot/internal/service/commands"
	"github.com/Azahir21/track-pendapatan-bot/internal/service/enrichment"
	reportingsvc "github.com/Azahir21/track-pendapatan-bot/internal/service/reporting"
	whatsappsvc "github.com/Azahir21/track-pendapatan-bot/internal/service/whatsapp"
	"github.com/Azahir21/track-pendapatan-bot/pkg/clients/anthropic"
	"github.com/Azahir21/track-pendapatan-bot/pkg/clients/weather"
	whatsappclient "github.com/Azahir21/track-pendapatan-bot/pkg/clients/whatsapp"
	"github.com/Azahir21/track-pendapatan-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("failed to resolve business timezone", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var archive scheduler.Archive
	if cfg.Sheets.Enabled() {
		sheetArchive, err := sheets.NewGoogleSheetArchive(context.Background(), cfg.Sheets, baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init sheet archive", zap.Error(err))
		}
		archive = sheetArchive
		baseLogger.Info("sheet archive enabled", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	}

	reportingSvc := reportingsvc.NewService(mongoRepo, location, baseLogger.Named("svc.reporting"))
	commandDispatcher := commandsvc.NewService(mongoRepo, reportingSvc, location, baseLogger.Named("svc.commands"))

	var weatherClient enrichment.WeatherClient
	if cfg.Weather.Enabled() {
		weatherClient = weather.NewClient()
		baseLogger.Info("weather enrichment enabled")
	}
	var marketClient enrichment.MarketClient
	if cfg.AI.AnthropicKey != "" {
		marketClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("market note enrichment enabled")
	}
	enricher := enrichment.NewService(weatherClient, marketClient, cfg.Weather, baseLogger)

	whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))

	sched := scheduler.NewScheduler(reportingSvc, mongoRepo, messagingSvc, enricher, archive, location, cfg.Reporting.TestMode, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	webhookHandler := handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	scheduleHandler := handlers.NewScheduleHandler(sched, baseLogger.Named("handlers.schedules"))
	reportHandler := handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(webhookHandler, scheduleHandler, reportHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
