package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/aqleung/trade-ledger/internal/auth"
	"github.com/aqleung/trade-ledger/internal/binance"
	"github.com/aqleung/trade-ledger/internal/bybit"
	"github.com/aqleung/trade-ledger/internal/coingecko"
	"github.com/aqleung/trade-ledger/internal/config"
	"github.com/aqleung/trade-ledger/internal/database"
	"github.com/aqleung/trade-ledger/internal/ledger"
	"github.com/aqleung/trade-ledger/internal/model"
	"github.com/aqleung/trade-ledger/internal/pipeline"
	"github.com/aqleung/trade-ledger/internal/portfolio"
	"github.com/aqleung/trade-ledger/internal/ratelimit"
	"github.com/aqleung/trade-ledger/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/syncer.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up structured logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Each sync run gets a correlation ID so overlapping logs from scheduled
	// runs can be told apart.
	logger = logger.With("run_id", uuid.NewString())

	logger.Info("starting syncer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Make .env values visible to ${VAR} expansion in the config file.
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"ledger_backend", cfg.Ledger.Backend,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	store, cleanup, err := openLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	sources, err := buildSources(cfg, logger)
	if err != nil {
		logger.Error("failed to build exchange sources", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(sources, map[model.Exchange]pipeline.NormalizeFunc{
		model.ExchangeBinance: binance.Normalize,
		model.ExchangeBybit:   bybit.Normalize,
	}, logger)

	trades, stats := pipe.Run(ctx)

	res, err := ledger.NewSyncer(store, logger).Sync(ctx, trades)
	if err != nil {
		logger.Error("ledger sync failed", "error", err)
		os.Exit(1)
	}

	logger.Info("sync run complete",
		"fetched", stats.Fetched,
		"normalized", stats.Normalized,
		"dropped", stats.Dropped,
		"written", res.Written,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)

	if cfg.Portfolio.Enabled {
		if err := updatePortfolio(ctx, cfg, logger); err != nil {
			logger.Error("portfolio update failed", "error", err)
		}
	}
}

// openLedger builds the configured ledger backend and its cleanup.
func openLedger(ctx context.Context, cfg *config.SyncerConfig, logger *slog.Logger) (ledger.Ledger, func(), error) {
	switch cfg.Ledger.Backend {
	case config.BackendPostgres:
		logger.Info("connecting to database",
			"host", cfg.Ledger.Postgres.Host,
			"port", cfg.Ledger.Postgres.Port,
			"database", cfg.Ledger.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Ledger.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("connect ledger database: %w", err)
		}
		return ledger.NewPGLedger(pool, cfg.Ledger.Table), pool.Close, nil
	case config.BackendCSV:
		return ledger.NewCSVLedger(cfg.Ledger.CSVPath), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

// buildSources creates one trade source per configured exchange. An exchange
// without credentials is simply not polled.
func buildSources(cfg *config.SyncerConfig, logger *slog.Logger) ([]pipeline.Source, error) {
	var sources []pipeline.Source

	if cfg.Binance.APIKey != "" {
		creds, err := auth.LoadCredentials(cfg.Binance.APIKey, cfg.Binance.APISecret)
		if err != nil {
			return nil, fmt.Errorf("binance credentials: %w", err)
		}
		client := binance.NewClient(cfg.Binance.RestURL, creds,
			binance.WithLogger(logger),
			binance.WithTimeout(cfg.Binance.Timeout),
			binance.WithRetries(cfg.Binance.MaxRetries, time.Second),
			binance.WithGovernor(ratelimit.New(cfg.Binance.MinRequestInterval)),
		)
		sources = append(sources, binance.NewSource(client, cfg.Binance.PageLimit, logger))
	} else {
		logger.Warn("binance api_key not set, skipping exchange")
	}

	if cfg.Bybit.APIKey != "" {
		creds, err := auth.LoadCredentials(cfg.Bybit.APIKey, cfg.Bybit.APISecret)
		if err != nil {
			return nil, fmt.Errorf("bybit credentials: %w", err)
		}
		client := bybit.NewClient(cfg.Bybit.RestURL, creds,
			bybit.WithLogger(logger),
			bybit.WithTimeout(cfg.Bybit.Timeout),
			bybit.WithRetries(cfg.Bybit.MaxRetries, time.Second),
			bybit.WithGovernor(ratelimit.New(cfg.Bybit.MinRequestInterval)),
		)
		sources = append(sources, bybit.NewSource(client, cfg.Bybit.PageLimit, logger))
	} else {
		logger.Warn("bybit api_key not set, skipping exchange")
	}

	return sources, nil
}

// updatePortfolio revalues the portfolio table against current CoinGecko
// prices. Failures here never affect the trade ledger, which has already been
// synced.
func updatePortfolio(ctx context.Context, cfg *config.SyncerConfig, logger *slog.Logger) error {
	assets, err := portfolio.LoadCSV(cfg.Portfolio.CSVPath)
	if err != nil {
		return fmt.Errorf("load portfolio: %w", err)
	}
	if len(assets) == 0 {
		logger.Info("portfolio table empty, nothing to update", "path", cfg.Portfolio.CSVPath)
		return nil
	}

	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, portfolio.CoinID(a.Crypto))
	}

	gecko := coingecko.NewClient(cfg.CoinGecko.RestURL, cfg.CoinGecko.APIKey,
		coingecko.WithLogger(logger),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout),
	)
	prices, err := gecko.GetSimplePrices(ctx, ids, "usd")
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}

	total := portfolio.Update(assets, prices)
	if err := portfolio.SaveCSV(cfg.Portfolio.CSVPath, assets); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}

	logger.Info("portfolio updated",
		"assets", len(assets),
		"total_value_usd", total,
	)
	return nil
}
