package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TickerBoard/internal/model"
)

func TestFormatSummary(t *testing.T) {
	sma := 24_000.0
	s := model.SeriesSummary{
		Bars:       30,
		FirstDate:  time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		LastDate:   time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
		LastClose:  25_200,
		Change:     -300,
		ChangePct:  -1.1764,
		PeriodHigh: 26_150.5,
		PeriodLow:  22_000,
		SMA20:      &sma,
	}

	out := FormatSummary("TCB", s)
	assert.Contains(t, out, "TCB | 2025-01-02 to 2025-02-12 (30 bars)")
	assert.Contains(t, out, "Last close: 25,200 (-300, -1.18%)")
	assert.Contains(t, out, "Period high: 26,150.5")
	assert.Contains(t, out, "Period low: 22,000")
	assert.Contains(t, out, "SMA20: 24,000 (+5.0% from close)")
}

func TestFormatSummary_SingleBar(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	out := FormatSummary("FPT", model.SeriesSummary{Bars: 1, FirstDate: day, LastDate: day, LastClose: 99.5})
	assert.Contains(t, out, "Last close: 99.5\n")
	assert.Contains(t, out, "SMA20: n/a")
}

func TestFormatTickers(t *testing.T) {
	assert.Equal(t, "A  B\nC\n", FormatTickers([]string{"A", "B", "C"}, 2))
	assert.Equal(t, "A\nB\n", FormatTickers([]string{"A", "B"}, 0))
	assert.Empty(t, FormatTickers(nil, 4))
}
