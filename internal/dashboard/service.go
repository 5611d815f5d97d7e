// Package dashboard wires validation, acquisition, indicators and chart
// assembly into the two calls the UI makes.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/chart"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/model"
	"TickerBoard/internal/ticker"
)

var errBadSymbol = errors.New("ticker must be letters and digits only")

// Service answers chart and series requests.
type Service struct {
	Source collector.Source
	Now    func() time.Time
}

// NewService creates a Service reading from src.
func NewService(src collector.Source) *Service {
	return &Service{Source: src, Now: time.Now}
}

// DefaultStartDate is January 1st of the current year.
func (s *Service) DefaultStartDate() time.Time {
	return time.Date(s.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Tickers returns the symbols offered for selection.
func (s *Service) Tickers() []string { return ticker.Available() }

// LoadTickerChart validates raw, fetches bars from start (DefaultStartDate
// when zero), drops bars before start, adds moving averages over what remains
// and builds the chart. The returned spec is
// always renderable. A non-nil error is a *model.Error explaining why the
// chart is empty or degraded; it is meant for display next to the chart.
func (s *Service) LoadTickerChart(ctx context.Context, raw string, start time.Time) (model.ChartSpec, error) {
	symbol := ticker.Normalize(raw)
	if start.IsZero() {
		start = s.DefaultStartDate()
	}

	series, err := s.acquire(ctx, raw, start)
	if err != nil {
		return chart.Simple(nil, symbol, start), err
	}

	// averages start over at the first plotted bar
	visible := series.Since(start)
	if len(visible) == 0 {
		err := model.NewError(model.KindNoData, symbol,
			fmt.Errorf("no bars on or after %s", start.Format(model.DateLayout)))
		log.Warn().Str("ticker", symbol).Int("fetched", len(series)).Msg("no data from start date")
		return chart.Empty(symbol), err
	}

	spec, err := chart.Assemble(calculator.Augment(visible), symbol, start)
	if err != nil {
		return spec, err
	}
	log.Info().Str("ticker", symbol).Int("bars", len(visible)).Msg("chart built")
	return spec, nil
}

// GetRawSeries returns the normalized bars without building a chart. The
// series is nil whenever err is non-nil, including when there is no data.
func (s *Service) GetRawSeries(ctx context.Context, raw string, start time.Time) (model.Series, error) {
	if start.IsZero() {
		start = s.DefaultStartDate()
	}
	return s.acquire(ctx, raw, start)
}

func (s *Service) acquire(ctx context.Context, raw string, start time.Time) (model.Series, error) {
	symbol := ticker.Normalize(raw)
	if !ticker.IsValid(raw) {
		err := model.NewError(model.KindInvalidTicker, raw, errBadSymbol)
		log.Warn().Str("ticker", raw).Msg("invalid ticker")
		return nil, err
	}

	series, err := s.Source.Acquire(ctx, symbol, start)
	if err != nil {
		log.Error().Err(err).Str("ticker", symbol).Msg("unable to fetch data")
		return nil, err
	}
	if len(series) == 0 {
		log.Warn().Str("ticker", symbol).Str("start", start.Format(model.DateLayout)).Msg("no data found")
		return nil, model.NewError(model.KindNoData, symbol, nil)
	}
	return series, nil
}
