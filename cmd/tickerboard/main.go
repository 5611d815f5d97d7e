package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TickerBoard/internal/cache"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/config"
	"TickerBoard/internal/dashboard"
)

var (
	cfgPath  string
	offline  bool
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tickerboard",
		Short:         "Daily stock charts with moving averages from the TCBS public API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Serve generated data instead of calling the provider")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newServeCmd(), newChartCmd(), newSummaryCmd(), newTickersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the pieces shared by every subcommand.
type app struct {
	cfg     *config.Config
	cache   *cache.CachedSource
	service *dashboard.Service
}

func loadApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Override(logLevel, offline)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogging(cfg.Log.Level)

	var fetcher collector.Fetcher
	if cfg.DataSource.Offline {
		fetcher = &collector.MockFetcher{Price: 25_000, DiscardCalls: true}
	} else {
		fetcher = collector.NewTCBSFetcher(cfg.DataSource.BaseURL, cfg.Proxy, cfg.DataSource.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	cached := cache.NewCachedSource(collector.NewCollector(fetcher), cfg.Cache.TTL)
	return &app{
		cfg:     cfg,
		cache:   cached,
		service: dashboard.NewService(cached),
	}, nil
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
