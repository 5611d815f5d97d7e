// Package report renders series summaries as plain text for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"TickerBoard/internal/model"
)

// FormatSummary formats the headline numbers of a series.
func FormatSummary(symbol string, s model.SeriesSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | %s to %s (%d bars)\n\n",
		symbol, s.FirstDate.Format(model.DateLayout), s.LastDate.Format(model.DateLayout), s.Bars))

	b.WriteString(fmt.Sprintf("Last close: %s", price(s.LastClose)))
	if s.Bars > 1 {
		b.WriteString(fmt.Sprintf(" (%s%s, %+.2f%%)", sign(s.Change), price(abs(s.Change)), s.ChangePct))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Period high: %s\n", price(s.PeriodHigh)))
	b.WriteString(fmt.Sprintf("Period low: %s\n", price(s.PeriodLow)))

	if s.SMA20 != nil {
		dev := 0.0
		if *s.SMA20 > 0 {
			dev = (s.LastClose - *s.SMA20) / *s.SMA20 * 100
		}
		b.WriteString(fmt.Sprintf("SMA20: %s (%+.1f%% from close)\n", price(*s.SMA20), dev))
	} else {
		b.WriteString("SMA20: n/a\n")
	}

	return b.String()
}

// FormatTickers lays out symbols in rows of perRow.
func FormatTickers(symbols []string, perRow int) string {
	if perRow <= 0 {
		perRow = 1
	}
	var b strings.Builder
	for i := 0; i < len(symbols); i += perRow {
		end := min(i+perRow, len(symbols))
		b.WriteString(strings.Join(symbols[i:end], "  "))
		b.WriteString("\n")
	}
	return b.String()
}

func price(v float64) string { return humanize.CommafWithDigits(v, 2) }

func sign(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
