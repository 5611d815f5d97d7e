// Package chart turns price series into declarative chart specifications.
// Every function here is pure: the same inputs always give the same spec and
// inputs are never modified.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"TickerBoard/internal/model"
)

var million = decimal.NewFromInt(1_000_000)

// Empty returns the title-only chart used when there is nothing to plot.
func Empty(symbol string) model.ChartSpec {
	return model.ChartSpec{
		Title:  title(symbol),
		Layout: model.Layout{Template: template},
	}
}

// Build assembles the candlestick chart: candles, MA(20), MA(50) and a volume
// panel below. Bars before start are dropped first; if none remain the empty
// chart is returned. It fails with ASSEMBLY_ERROR when the indicators are not
// aligned with the bars or a remaining bar lacks OHLC prices.
func Build(aug model.AugmentedSeries, symbol string, start time.Time) (model.ChartSpec, error) {
	if !aug.Aligned() {
		return model.ChartSpec{}, model.NewError(model.KindAssembly, symbol,
			fmt.Errorf("indicator length mismatch: %d bars, %d ma20, %d ma50",
				len(aug.Bars), len(aug.MA20), len(aug.MA50)))
	}

	from := aug.Bars.FirstIndexFrom(start)
	bars := aug.Bars[from:]
	if len(bars) == 0 {
		return Empty(symbol), nil
	}

	n := len(bars)
	x := make([]string, n)
	open, high, low, closes := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	volume := make([]float64, n)
	colors := make([]string, n)
	hover := make([]string, n)

	for i, b := range bars {
		if !b.HasOHLC() {
			return model.ChartSpec{}, model.NewError(model.KindAssembly, symbol,
				fmt.Errorf("bar %s has no full OHLC", b.Date.Format(model.DateLayout)))
		}
		day := b.Date.Format(model.DateLayout)
		x[i] = day
		open[i], high[i], low[i], closes[i] = b.Open, b.High, b.Low, b.Close
		volume[i] = decimal.NewFromFloat(b.Volume).Div(million).InexactFloat64()
		colors[i] = barColor(b)
		hover[i] = fmt.Sprintf("<b>%s</b><br>Open: %s<br>High: %s<br>Low: %s<br>Close: %s",
			day, price(b.Open), price(b.High), price(b.Low), price(b.Close))
	}

	candles := model.Layer{
		Kind:            model.LayerCandlestick,
		Name:            "OHLC",
		X:               x,
		Open:            open,
		High:            high,
		Low:             low,
		Close:           closes,
		IncreasingColor: BullishColor,
		DecreasingColor: BearishColor,
		Opacity:         0.8,
		HoverText:       hover,
	}
	volumes := model.Layer{
		Kind:          model.LayerBar,
		Name:          "Volume",
		X:             x,
		Y:             volume,
		Colors:        colors,
		Opacity:       0.6,
		HoverTemplate: "<b>%{x|%Y-%m-%d}</b><br>Volume: %{y:.2f}M<extra></extra>",
	}

	return model.ChartSpec{
		Title: title(symbol),
		Panels: []model.Panel{
			{
				ID:          "price",
				Title:       title(symbol),
				HeightRatio: priceRatio,
				YAxis: model.Axis{
					ShowGrid:   true,
					GridColor:  gridColor,
					TickFormat: ",.0f",
				},
				Layers: []model.Layer{
					candles,
					maLine("MA(20)", MA20Color, x, aug.MA20[from:]),
					maLine("MA(50)", MA50Color, x, aug.MA50[from:]),
				},
			},
			{
				ID:          "volume",
				Title:       "Volume",
				HeightRatio: volumeRatio,
				YAxis: model.Axis{
					ShowGrid:   true,
					GridColor:  gridColor,
					TickFormat: ".2f",
					TickSuffix: "M",
				},
				Layers: []model.Layer{volumes},
			},
		},
		Layout: model.Layout{
			Height:     candleHeight,
			Template:   template,
			TitleSize:  20,
			TitleColor: titleColor,
			HoverMode:  "x unified",
			ShowLegend: true,
			Legend: &model.Legend{
				Orientation: "h",
				X:           1,
				Y:           1.05,
				XAnchor:     "center",
				YAnchor:     "top",
				Background:  "rgba(255,255,255,0)",
			},
			Margin: &model.Margin{Left: 50, Right: 50, Top: 80, Bottom: 50},
			XAxis: model.Axis{
				Type:       "date",
				TickFormat: "%b %Y",
				TickSize:   10,
			},
			SharedX:         true,
			VerticalSpacing: spacing,
			Background:      "white",
		},
	}, nil
}

// Assemble builds the candlestick chart and falls back to Simple when that is
// not possible. The returned spec is always usable; a non-nil error carries the
// ASSEMBLY_ERROR that caused the fallback.
func Assemble(aug model.AugmentedSeries, symbol string, start time.Time) (spec model.ChartSpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = model.NewError(model.KindAssembly, symbol, fmt.Errorf("build panicked: %v", r))
			log.Error().Err(err).Str("symbol", symbol).Msg("chart build panicked, using line chart")
			spec = Simple(aug.Bars, symbol, start)
		}
	}()

	spec, err = Build(aug, symbol, start)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("candlestick unavailable, using line chart")
		return Simple(aug.Bars, symbol, start), err
	}
	return spec, nil
}

func maLine(name, color string, x []string, values []float64) model.Layer {
	y := make([]float64, len(values))
	copy(y, values)
	return model.Layer{
		Kind:          model.LayerLine,
		Name:          name,
		X:             x,
		Y:             y,
		Color:         color,
		Width:         2,
		Opacity:       0.8,
		HoverTemplate: "<b>%{x|%Y-%m-%d}</b><br>" + name + ": %{y:,.0f}<extra></extra>",
	}
}

// barColor keys each volume bar to its own day; a flat day counts as bullish.
func barColor(b model.Bar) string {
	if b.Bullish() {
		return BullishColor
	}
	return BearishColor
}

func price(v float64) string {
	return humanize.Comma(int64(math.RoundToEven(v)))
}
