package model

import (
	"math"
	"time"
)

// DateLayout is the canonical textual form of a trading date.
const DateLayout = "2006-01-02"

// Bar is one trading day of OHLCV data. Open, High and Low are NaN when the
// provider omitted them; Close is always set.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// HasOHLC reports whether all four prices are present and positive.
func (b Bar) HasOHLC() bool {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

// Bullish reports whether the day closed at or above its open.
func (b Bar) Bullish() bool { return b.Close >= b.Open }

// Day truncates t to its UTC calendar date at 00:00 UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date into its canonical form.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Series holds daily bars in ascending date order with no duplicate dates.
// A zero-length Series means the provider had no rows for the range.
type Series []Bar

// Closes returns the close prices in order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// FirstIndexFrom returns the index of the first bar dated on or after start,
// or len(s) when there is none.
func (s Series) FirstIndexFrom(start time.Time) int {
	start = Day(start)
	for i, b := range s {
		if !b.Date.Before(start) {
			return i
		}
	}
	return len(s)
}

// Since returns a copy of the bars dated on or after start.
func (s Series) Since(start time.Time) Series {
	i := s.FirstIndexFrom(start)
	out := make(Series, len(s)-i)
	copy(out, s[i:])
	return out
}

// AugmentedSeries is a Series plus its 20 and 50 bar moving averages,
// index-aligned with Bars.
type AugmentedSeries struct {
	Bars Series
	MA20 []float64
	MA50 []float64
}

// Aligned reports whether the indicator arrays match the bar count.
func (a AugmentedSeries) Aligned() bool {
	return len(a.MA20) == len(a.Bars) && len(a.MA50) == len(a.Bars)
}
