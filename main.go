package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"realestate-bot/bot"
	"realestate-bot/config"
	"realestate-bot/metrics"
	"realestate-bot/models"
	"realestate-bot/services"
	"realestate-bot/storage"
	"realestate-bot/utils"
	"realestate-bot/webhook"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Real-estate Project Bot starting ===")
	logger.Info("Config: source %s | profile %s | limit %d | port %d",
		cfg.DatasetSource, cfg.DatasetProfile, cfg.ResultLimit, cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadTable(ctx, cfg, logger)
	if err != nil {
		var schemaErr *storage.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Error("Dataset does not match profile %q, missing columns: %v", schemaErr.Profile, schemaErr.Missing)
		}
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(table.Listings())
	insightSvc.Print(report)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg, reg)
		m.DatasetListings.Set(float64(table.Len()))
	}

	responder := bot.NewResponder(table, services.NewFilterEngine(cfg.ResultLimit), logger)
	handler := webhook.New(responder, report, m, logger)

	if err := webhook.Serve(ctx, cfg.Addr(), handler.Routes(cfg.WebhookPath), logger); err != nil {
		logger.Error("Webhook server failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Stopped.")
}

// loadTable reads the configured source once and builds the read-only table.
func loadTable(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*models.Table, error) {
	profiles, err := storage.LoadProfiles(cfg.ColumnProfilesPath)
	if err != nil {
		return nil, err
	}
	profile, err := storage.SelectProfile(profiles, cfg.DatasetProfile)
	if err != nil {
		return nil, err
	}

	src, err := storage.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("[loader] Reading %s", src.Describe())

	raw, err := storage.LoadRaw(ctx, src, profile)
	if err != nil {
		return nil, err
	}

	cleaner := services.NewCleaner(logger, profile.PriceFormat)
	table := models.NewTable(cleaner.Clean(raw))
	logger.Info("[loader] Table ready: %d listings across %d cities", table.Len(), len(table.Cities()))
	return table, nil
}
