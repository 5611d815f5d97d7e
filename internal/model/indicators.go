package model

import "time"

// SeriesSummary holds headline numbers for a series.
type SeriesSummary struct {
	Bars       int       `json:"bars"`
	FirstDate  time.Time `json:"first_date"`
	LastDate   time.Time `json:"last_date"`
	LastClose  float64   `json:"last_close"`
	Change     float64   `json:"change"`      // last close minus previous close
	ChangePct  float64   `json:"change_pct"`  // percent, 0 with a single bar
	PeriodHigh float64   `json:"period_high"`
	PeriodLow  float64   `json:"period_low"`
	SMA20      *float64  `json:"sma20,omitempty"` // nil with fewer than 20 bars
}
