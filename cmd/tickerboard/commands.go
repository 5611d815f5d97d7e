package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/dashboard"
	"TickerBoard/internal/model"
	"TickerBoard/internal/report"
	"TickerBoard/internal/scheduler"
	"TickerBoard/internal/server"
	"TickerBoard/internal/ticker"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the cache warm-up scheduler",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			// Context for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sched := scheduler.NewScheduler(ctx, a.service, a.cache, a.cfg.Watchlist)
			if err := sched.RegisterAll(a.cfg.Schedule.WarmCron, a.cfg.Schedule.PurgeCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("RUN_ON_START enabled, warming watchlist now")
				go sched.RunWarmNow()
			}

			srv := server.New(a.cfg.Server.Addr, a.service)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			case <-sigCh:
			}

			log.Info().Msg("shutdown signal received, stopping...")
			cancel()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("http shutdown")
			}
			log.Info().Msg("TickerBoard stopped")
			return nil
		},
	}
}

func newChartCmd() *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "chart TICKER",
		Short: "Print the chart specification for TICKER as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseStartFlag(start)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}

			spec, err := a.service.LoadTickerChart(cmd.Context(), args[0], from)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), dashboard.Describe(err))
			}
			body, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				return fmt.Errorf("encode chart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First date to plot (YYYY-MM-DD), defaults to January 1st")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "summary TICKER",
		Short: "Print last close, period range and SMA20 for TICKER",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseStartFlag(start)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}

			series, err := a.service.GetRawSeries(cmd.Context(), args[0], from)
			if err != nil {
				return errors.New(dashboard.Describe(err))
			}
			sum, err := calculator.Summarize(series)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatSummary(ticker.Normalize(args[0]), sum))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First date (YYYY-MM-DD), defaults to January 1st")
	return cmd
}

func newTickersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List the symbols offered by the dashboard",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), report.FormatTickers(ticker.Available(), 6))
		},
	}
}

func parseStartFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := model.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
