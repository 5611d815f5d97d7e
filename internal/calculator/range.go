package calculator

import (
	"errors"
	"math"

	"TickerBoard/internal/model"
)

// PeriodRange scans every bar and returns the highest high and lowest low.
// Bars without a high or low contribute their close instead.
func PeriodRange(bars model.Series) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		h, l := b.High, b.Low
		if math.IsNaN(h) {
			h = b.Close
		}
		if math.IsNaN(l) {
			l = b.Close
		}
		if h > high {
			high = h
		}
		if l < low {
			low = l
		}
	}
	return high, low, nil
}

// Summarize computes the headline numbers shown next to a raw series.
func Summarize(bars model.Series) (model.SeriesSummary, error) {
	high, low, err := PeriodRange(bars)
	if err != nil {
		return model.SeriesSummary{}, err
	}
	last := bars[len(bars)-1]
	sum := model.SeriesSummary{
		Bars:       len(bars),
		FirstDate:  bars[0].Date,
		LastDate:   last.Date,
		LastClose:  last.Close,
		PeriodHigh: high,
		PeriodLow:  low,
	}
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		sum.Change = last.Close - prev
		if prev != 0 {
			sum.ChangePct = sum.Change / prev * 100
		}
	}
	if sma, err := CalculateSMA(bars.Closes(), ShortWindow); err == nil {
		sum.SMA20 = &sma
	}
	return sum, nil
}
