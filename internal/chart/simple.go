package chart

import (
	"time"

	"TickerBoard/internal/model"
)

// Simple draws close prices from start onwards as a single line. It needs
// only Close and never fails; a nil or fully filtered series gives Empty.
func Simple(series model.Series, symbol string, start time.Time) model.ChartSpec {
	bars := series.Since(start)
	if len(bars) == 0 {
		return Empty(symbol)
	}

	x := make([]string, len(bars))
	for i, b := range bars {
		x[i] = b.Date.Format(model.DateLayout)
	}

	return model.ChartSpec{
		Title: title(symbol),
		Panels: []model.Panel{{
			ID:          "price",
			HeightRatio: 1,
			YAxis:       model.Axis{Title: "Price (VND)", ShowGrid: true},
			Layers: []model.Layer{{
				Kind:  model.LayerLine,
				Name:  "Close Price",
				X:     x,
				Y:     bars.Closes(),
				Color: LineColor,
				Width: 2,
			}},
		}},
		Layout: model.Layout{
			Height:     simpleHeight,
			Template:   template,
			ShowLegend: true,
			XAxis:      model.Axis{Type: "date", Title: "Date"},
		},
	}
}
