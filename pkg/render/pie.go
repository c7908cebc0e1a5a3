package render

import (
	"fmt"
	"io"

	"spacex_dash/models"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Pie рисует круговую диаграмму. Сектора с нулевым значением не рисуются;
// если рисовать нечего, выводится пустой холст с заголовком.
// При ValueLabels подпись имеет вид "Success: 3", иначе содержит долю в процентах.
func Pie(w io.Writer, c models.PieChart, opts Options) error {
	opts = opts.normalized()

	total := c.Total()
	var values []chart.Value
	for _, s := range c.Slices {
		if s.Value <= 0 {
			continue
		}
		label := fmt.Sprintf("%s (%.1f%%)", s.Label, 100*s.Value/total)
		if c.ValueLabels {
			label = fmt.Sprintf("%s: %g", s.Label, s.Value)
		}
		values = append(values, chart.Value{Value: s.Value, Label: label})
	}
	if len(values) == 0 {
		return blank(w, c.Title, opts)
	}

	pie := chart.PieChart{
		Title:  c.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Values: values,
	}
	return pie.Render(opts.Format.provider(), w)
}
