package render

import (
	"io"
	"math"

	"spacex_dash/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Границы диаметра точки в пикселях
const (
	minDotWidth = 3.0
	maxDotWidth = 14.0
)

// dotStyle рисует только точки, без соединительных линий.
func dotStyle(col drawing.Color, sizes []float64, maxSize float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotColor:    col.WithAlpha(200),
		DotWidth:    minDotWidth,
		DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
			return dotWidth(sizes[index], maxSize)
		},
	}
}

// dotWidth масштабирует размер точки пропорционально массе нагрузки.
func dotWidth(size, maxSize float64) float64 {
	if maxSize <= 0 || size <= 0 {
		return minDotWidth
	}
	return minDotWidth + (maxDotWidth-minDotWidth)*size/maxSize
}

// Scatter рисует диаграмму рассеяния: по серии на категорию ускорителя,
// ось X закреплена за интервалом слайдера, по оси Y — исход 0/1.
func Scatter(w io.Writer, c models.ScatterChart, opts Options) error {
	opts = opts.normalized()
	if len(c.Points) == 0 || c.Low >= c.High {
		return blank(w, c.Title, opts)
	}

	var maxSize float64
	for _, p := range c.Points {
		if p.Size > maxSize {
			maxSize = p.Size
		}
	}

	series := make([]chart.Series, 0, len(c.Categories))
	for i, category := range c.Categories {
		var xs, ys, sizes []float64
		for _, p := range c.Points {
			if p.BoosterVersionCategory != category {
				continue
			}
			xs = append(xs, p.PayloadMassKg)
			ys = append(ys, float64(p.Class))
			sizes = append(sizes, p.Size)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    category,
			XValues: xs,
			YValues: ys,
			Style:   dotStyle(chart.GetDefaultColor(i), sizes, maxSize),
		})
	}

	xMin, xMax := xRange(c)

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 120, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	return ch.Render(opts.Format.provider(), w)
}

// xRange возвращает границы оси X. Обычно это интервал слайдера; если его
// ширина не помещается в float64, ось сжимается до масс нагрузки на диаграмме.
func xRange(c models.ScatterChart) (float64, float64) {
	if delta := c.High - c.Low; !math.IsInf(delta, 0) && !math.IsNaN(delta) {
		return c.Low, c.High
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		lo = math.Min(lo, p.PayloadMassKg)
		hi = math.Max(hi, p.PayloadMassKg)
	}
	lo = math.Max(lo, c.Low)
	hi = math.Min(hi, c.High)
	if hi <= lo {
		lo, hi = lo-1, lo+1
	}
	return lo, hi
}
