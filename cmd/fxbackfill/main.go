package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/adapters/fxprovider"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/repositories/database/pgsql"
	"github.com/umutdinceryananer/FX-Risk-Calculator/pkg/config"
	"github.com/umutdinceryananer/FX-Risk-Calculator/pkg/database"
)

// fxbackfill fetches historical rates for one currency pair from a provider
// and persists them, so freshly provisioned environments have chart data
// before the scheduler has run for long enough.
func main() {
	var (
		symbol   = flag.String("symbol", "", "target currency code to backfill (required)")
		days     = flag.Int("days", 30, "number of days of history to fetch")
		provider = flag.String("provider", "", "provider name (defaults to the configured primary)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *symbol == "" {
		logger.Error("missing required -symbol flag")
		flag.Usage()
		os.Exit(2)
	}
	if *days <= 0 {
		logger.Error("-days must be a positive integer")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	providerName := *provider
	if providerName == "" {
		providerName = cfg.PrimaryProvider
	}
	rateProvider, err := buildProvider(providerName, cfg, logger)
	if err != nil || rateProvider == nil {
		logger.Error("Failed to build provider", slog.String("provider", providerName))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	series, err := rateProvider.GetHistory(ctx, cfg.CanonicalBase, strings.ToUpper(*symbol), *days)
	if err != nil {
		logger.Error("Failed to fetch history", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows := make([]domain.FxRate, 0, len(series.Points))
	for _, point := range series.Points {
		rows = append(rows, domain.FxRate{
			BaseCurrencyCode:   series.Base,
			TargetCurrencyCode: series.Symbol,
			Timestamp:          point.Timestamp,
			Rate:               point.Rate,
			Source:             series.Source,
		})
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	if err := repos.FxRateRepo.UpsertRates(ctx, rows); err != nil {
		logger.Error("Failed to persist history", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Backfill completed",
		slog.String("base", series.Base),
		slog.String("symbol", series.Symbol),
		slog.String("source", series.Source),
		slog.Int("points", len(rows)))
}

func buildProvider(name string, cfg *config.Config, logger *slog.Logger) (fxprovider.RateProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case fxprovider.ExchangeRateHostName:
		client := fxprovider.NewHTTPClient(fxprovider.HTTPClientConfig{
			BaseURL:    cfg.ExchangeRateHostBaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
		}, logger)
		return fxprovider.NewExchangeRateHostProvider(client), nil
	case fxprovider.FrankfurterName:
		client := fxprovider.NewHTTPClient(fxprovider.HTTPClientConfig{
			BaseURL:    cfg.FrankfurterBaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
		}, logger)
		return fxprovider.NewFrankfurterProvider(client), nil
	case fxprovider.MockName:
		return fxprovider.NewMockProvider(), nil
	default:
		return nil, nil
	}
}
