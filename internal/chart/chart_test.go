package chart

import (
	"math"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerBoard/internal/calculator"
	"TickerBoard/internal/model"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func syntheticSeries(n int) model.Series {
	s := make(model.Series, n)
	for i := range s {
		c := 100.0 + float64(i)*0.1
		o := c - 0.05
		if i%3 == 0 {
			o = c + 0.05
		}
		s[i] = model.Bar{
			Date:   day0.AddDate(0, 0, i),
			Open:   o,
			High:   c + 0.3,
			Low:    c - 0.3,
			Close:  c,
			Volume: float64(1_500_000 + i*10_000),
		}
	}
	return s
}

func TestBuild_LayersInOrder(t *testing.T) {
	aug := calculator.Augment(syntheticSeries(60))
	spec, err := Build(aug, "TCB", day0)
	require.NoError(t, err)

	require.Len(t, spec.Panels, 2)
	layers := spec.Layers()
	require.Len(t, layers, 4)
	assert.Equal(t, model.LayerCandlestick, layers[0].Kind)
	assert.Equal(t, "MA(20)", layers[1].Name)
	assert.Equal(t, MA20Color, layers[1].Color)
	assert.Equal(t, "MA(50)", layers[2].Name)
	assert.Equal(t, MA50Color, layers[2].Color)
	assert.Equal(t, model.LayerBar, layers[3].Kind)
	assert.Equal(t, "volume", spec.Panels[1].ID)

	assert.Equal(t, BullishColor, layers[0].IncreasingColor)
	assert.Equal(t, BearishColor, layers[0].DecreasingColor)
	assert.Equal(t, "TCB Price Chart", spec.Title)
	assert.InDelta(t, 0.7, spec.Panels[0].HeightRatio, 1e-12)
	assert.InDelta(t, 0.3, spec.Panels[1].HeightRatio, 1e-12)
	assert.Greater(t, spec.Panels[0].HeightRatio, spec.Panels[1].HeightRatio)
	assert.True(t, spec.Layout.SharedX)
	assert.Equal(t, "%b %Y", spec.Layout.XAxis.TickFormat)
	assert.Equal(t, "M", spec.Panels[1].YAxis.TickSuffix)
}

func TestBuild_FiltersFromStartDate(t *testing.T) {
	s := syntheticSeries(60)
	aug := calculator.Augment(s)

	assert.Equal(t, aug.MA20[19], func() float64 {
		sum := 0.0
		for i := 0; i <= 19; i++ {
			sum += s[i].Close
		}
		return sum / 20
	}())

	spec, err := Build(aug, "TCB", day0.AddDate(0, 0, 30))
	require.NoError(t, err)
	candles := spec.Layers()[0]
	require.Len(t, candles.X, 30)
	require.Len(t, candles.Open, 30)
	assert.Equal(t, "2024-01-31", candles.X[0])
	assert.Equal(t, aug.MA20[30:], spec.Layers()[1].Y)
	assert.Equal(t, aug.MA50[30:], spec.Layers()[2].Y)
	for _, l := range spec.Layers() {
		assert.Len(t, l.X, 30)
	}
}

func TestBuild_StartBetweenBarsIsInclusive(t *testing.T) {
	aug := calculator.Augment(syntheticSeries(5))
	spec, err := Build(aug, "TCB", day0.AddDate(0, 0, 2).Add(13*time.Hour))
	require.NoError(t, err)
	assert.Len(t, spec.Layers()[0].X, 3)
}

func TestBuild_VolumeColorsPerBar(t *testing.T) {
	s := model.Series{
		{Date: day0, Open: 100, High: 106, Low: 99, Close: 105, Volume: 2_500_000},
		{Date: day0.AddDate(0, 0, 1), Open: 100, High: 101, Low: 97, Close: 98, Volume: 1_000_000},
		{Date: day0.AddDate(0, 0, 2), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1_234_567},
	}
	spec, err := Build(calculator.Augment(s), "TCB", time.Time{})
	require.NoError(t, err)

	vol := spec.Layers()[3]
	assert.Equal(t, []string{BullishColor, BearishColor, BullishColor}, vol.Colors)
	assert.Equal(t, []float64{2.5, 1, 1.234567}, vol.Y)
}

func TestBuild_HoverText(t *testing.T) {
	s := model.Series{{Date: day0, Open: 25400, High: 26150.4, Low: 25000, Close: 1234567.6, Volume: 1}}
	spec, err := Build(calculator.Augment(s), "TCB", time.Time{})
	require.NoError(t, err)
	assert.Equal(t,
		"<b>2024-01-01</b><br>Open: 25,400<br>High: 26,150<br>Low: 25,000<br>Close: 1,234,568",
		spec.Layers()[0].HoverText[0])
}

func TestBuild_EmptyCases(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		spec, err := Build(calculator.Augment(model.Series{}), "TCB", day0)
		require.NoError(t, err)
		assert.True(t, spec.IsEmpty())
		assert.Empty(t, spec.Panels)
		assert.Equal(t, "TCB Price Chart", spec.Title)
	})

	t.Run("zero value", func(t *testing.T) {
		spec, err := Build(model.AugmentedSeries{}, "TCB", day0)
		require.NoError(t, err)
		assert.True(t, spec.IsEmpty())
	})

	t.Run("all bars before start", func(t *testing.T) {
		spec, err := Build(calculator.Augment(syntheticSeries(10)), "TCB", day0.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, spec.IsEmpty())
		assert.Len(t, spec.Layers(), 0)
	})
}

func TestBuild_Errors(t *testing.T) {
	t.Run("missing ohlc", func(t *testing.T) {
		s := syntheticSeries(3)
		s[1].Open = math.NaN()
		_, err := Build(calculator.Augment(s), "TCB", time.Time{})
		require.Error(t, err)
		assert.Equal(t, model.KindAssembly, model.KindOf(err))
	})

	t.Run("misaligned indicators", func(t *testing.T) {
		aug := calculator.Augment(syntheticSeries(3))
		aug.MA50 = aug.MA50[:2]
		_, err := Build(aug, "TCB", time.Time{})
		assert.Equal(t, model.KindAssembly, model.KindOf(err))
	})
}

func TestBuild_Deterministic(t *testing.T) {
	aug := calculator.Augment(syntheticSeries(60))
	a, err := Build(aug, "TCB", day0.AddDate(0, 0, 10))
	require.NoError(t, err)
	b, err := Build(aug, "TCB", day0.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	s := syntheticSeries(40)
	aug := calculator.Augment(s)
	snapshot := model.AugmentedSeries{
		Bars: append(model.Series(nil), aug.Bars...),
		MA20: append([]float64(nil), aug.MA20...),
		MA50: append([]float64(nil), aug.MA50...),
	}

	spec, err := Build(aug, "TCB", day0.AddDate(0, 0, 5))
	require.NoError(t, err)
	spec.Layers()[1].Y[0] = -1

	assert.Equal(t, snapshot, aug)
}

func TestAssemble_FallsBackToSimple(t *testing.T) {
	s := syntheticSeries(10)
	s[4].High = math.NaN()

	spec, err := Assemble(calculator.Augment(s), "TCB", day0.AddDate(0, 0, 2))
	require.Error(t, err)
	assert.Equal(t, model.KindAssembly, model.KindOf(err))

	layers := spec.Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, "Close Price", layers[0].Name)
	assert.Len(t, layers[0].X, 8)
	assert.Equal(t, simpleHeight, spec.Layout.Height)
}

func TestAssemble_RecoversFromBuildPanic(t *testing.T) {
	s := syntheticSeries(10)
	s[6].Volume = math.NaN()
	aug := calculator.Augment(s)

	assert.Panics(t, func() { _, _ = Build(aug, "TCB", day0) })

	spec, err := Assemble(aug, "TCB", day0)
	require.Error(t, err)
	assert.Equal(t, model.KindAssembly, model.KindOf(err))
	assert.ErrorContains(t, err, "panicked")

	layers := spec.Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, "Close Price", layers[0].Name)
	assert.Equal(t, s.Closes(), layers[0].Y)
	assert.Equal(t, "TCB Price Chart", spec.Title)
}

func TestAssemble_Success(t *testing.T) {
	spec, err := Assemble(calculator.Augment(syntheticSeries(30)), "FPT", time.Time{})
	require.NoError(t, err)
	assert.Len(t, spec.Layers(), 4)
}

func TestAssemble_EmptyNeverFails(t *testing.T) {
	spec, err := Assemble(model.AugmentedSeries{}, "FPT", day0)
	require.NoError(t, err)
	assert.True(t, spec.IsEmpty())
}

func TestSimple(t *testing.T) {
	s := syntheticSeries(10)
	spec := Simple(s, "VNM", day0.AddDate(0, 0, 3))

	require.Len(t, spec.Panels, 1)
	line := spec.Layers()[0]
	assert.Equal(t, model.LayerLine, line.Kind)
	assert.Equal(t, LineColor, line.Color)
	assert.Len(t, line.Y, 7)
	assert.Equal(t, s[3].Close, line.Y[0])
	assert.Equal(t, "Price (VND)", spec.Panels[0].YAxis.Title)
	assert.Equal(t, "Date", spec.Layout.XAxis.Title)
	assert.Equal(t, simpleHeight, spec.Layout.Height)
}

func TestSimple_NilAndFiltered(t *testing.T) {
	assert.True(t, Simple(nil, "VNM", day0).IsEmpty())
	assert.True(t, Simple(syntheticSeries(3), "VNM", day0.AddDate(1, 0, 0)).IsEmpty())
	assert.Equal(t, "VNM Price Chart", Simple(nil, "VNM", day0).Title)
}
