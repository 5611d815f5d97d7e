package chart

const (
	BullishColor = "#26A69A"
	BearishColor = "#EF5350"
	MA20Color    = "#FF9800"
	MA50Color    = "#2196F3"
	LineColor    = "#2196F3"

	template   = "plotly_white"
	gridColor  = "rgba(0,0,0,0.01)"
	titleColor = "#2E3440"

	priceRatio  = 0.7
	volumeRatio = 0.3
	spacing     = 0.03

	candleHeight = 600
	simpleHeight = 500
)

func title(symbol string) string { return symbol + " Price Chart" }
