package calculator

import (
	"errors"

	"TickerBoard/internal/model"
)

// Moving-average windows drawn on the price panel.
const (
	ShortWindow = 20
	LongWindow  = 50
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RollingMean returns the trailing mean of values over up to window points
// ending at each index. Near the start the window shrinks, so out[0] equals
// values[0]. Each mean is summed from scratch so the result does not depend on
// earlier points outside the window.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		window = 1
	}
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(i-start+1)
	}
	return out
}

// Augment attaches the 20 and 50 bar moving averages of close to series.
// The input is not modified.
func Augment(series model.Series) model.AugmentedSeries {
	closes := series.Closes()
	return model.AugmentedSeries{
		Bars: series,
		MA20: RollingMean(closes, ShortWindow),
		MA50: RollingMean(closes, LongWindow),
	}
}
