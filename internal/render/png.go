package render

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"launchdash/internal/figure"
)

// ErrNothingToDraw is returned when a figure has no non-zero slice or no
// points. The browser renders such figures as empty charts; a raster image
// has nothing to show.
var ErrNothingToDraw = errors.New("figure has nothing to draw")

// singlePointPad widens the x axis around a lone payload value, in kg.
const singlePointPad = 500.0

// Default raster size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// PNG draws fig as a PNG image of the given size.
func PNG(w io.Writer, fig figure.Figure, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var r interface {
		Render(chart.RendererProvider, io.Writer) error
	}
	switch f := fig.(type) {
	case *figure.PieFigure:
		pc, err := pieChart(f, width, height)
		if err != nil {
			return err
		}
		r = &pc
	case *figure.ScatterFigure:
		sc, err := scatterChart(f, width, height)
		if err != nil {
			return err
		}
		r = &sc
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedFigure, fig)
	}

	if err := r.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func pieChart(f *figure.PieFigure, width, height int) (chart.PieChart, error) {
	values := make([]chart.Value, 0, len(f.Slices))
	for _, s := range f.Slices {
		// Zero slices would make the normalised pie divide by zero.
		if s.Value == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Value),
			Value: float64(s.Value),
		})
	}
	if len(values) == 0 {
		return chart.PieChart{}, fmt.Errorf("%w: %s", ErrNothingToDraw, f.Title)
	}
	return chart.PieChart{
		Title:  f.Title,
		Width:  width,
		Height: height,
		Values: values,
	}, nil
}

func scatterChart(f *figure.ScatterFigure, width, height int) (chart.Chart, error) {
	if f.Len() == 0 {
		return chart.Chart{}, fmt.Errorf("%w: %s", ErrNothingToDraw, f.Title)
	}

	lo, hi := f.Series[0].Points[0].PayloadMassKg, f.Series[0].Points[0].PayloadMassKg
	series := make([]chart.Series, 0, len(f.Series))
	for i, s := range f.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.PayloadMassKg)
			ys = append(ys, float64(p.Class))
			lo = min(lo, p.PayloadMassKg)
			hi = max(hi, p.PayloadMassKg)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}
	// go-chart rejects a zero-width range, which a single payload value produces.
	if lo == hi {
		lo, hi = lo-singlePointPad, hi+singlePointPad
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  f.XLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}
