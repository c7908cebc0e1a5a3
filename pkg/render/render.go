package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownFormat — запрошен формат изображения, который не поддерживается.
var ErrUnknownFormat = errors.New("unknown image format")

// Format — формат изображения диаграммы.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat разбирает расширение файла ("png", ".svg").
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType возвращает MIME-тип формата.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options задаёт размер холста и формат.
type Options struct {
	Width  int
	Height int
	Format Format
}

// DefaultOptions — размеры по умолчанию.
func DefaultOptions() Options {
	return Options{Width: 900, Height: 500, Format: PNG}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Format == "" {
		o.Format = def.Format
	}
	return o
}

// blank рисует пустой холст с заголовком: так страница видимо обновляется,
// даже когда в выборке нет данных.
func blank(w io.Writer, title string, opts Options) error {
	r, err := opts.Format.provider()(opts.Width, opts.Height)
	if err != nil {
		return err
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.Close()
	r.Fill()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)
	r.SetFontColor(chart.DefaultTextColor)

	r.SetFontSize(chart.DefaultTitleFontSize)
	box := r.MeasureText(title)
	r.Text(title, (opts.Width-box.Width())/2, 2*box.Height())

	const msg = "No data for the selected filters"
	r.SetFontSize(chart.DefaultFontSize)
	box = r.MeasureText(msg)
	r.Text(msg, (opts.Width-box.Width())/2, opts.Height/2)

	return r.Save(w)
}
