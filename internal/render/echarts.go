// Package render turns figures into chart library artefacts: ECharts
// options for the browser, a static HTML snapshot, and PNG images.
package render

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"launchdash/internal/figure"
)

// ErrUnsupportedFigure is returned for figure kinds this package cannot draw.
var ErrUnsupportedFigure = errors.New("unsupported figure")

// Chart is the subset of go-echarts chart behaviour the dashboard uses.
type Chart interface {
	JSON() map[string]interface{}
	Validate()
}

// NewChart builds the go-echarts chart for fig. chartID becomes the DOM id
// of the chart container when rendered into a page.
func NewChart(fig figure.Figure, chartID string) (Chart, error) {
	switch f := fig.(type) {
	case *figure.PieFigure:
		return newPie(f, chartID), nil
	case *figure.ScatterFigure:
		return newScatter(f, chartID), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFigure, fig)
	}
}

// EChartsOption returns the ECharts option object for fig, ready to be
// JSON encoded and passed to setOption in the browser.
func EChartsOption(fig figure.Figure) (map[string]interface{}, error) {
	c, err := NewChart(fig, "")
	if err != nil {
		return nil, err
	}
	c.Validate()
	return c.JSON(), nil
}

func newPie(f *figure.PieFigure, chartID string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: f.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Left:   "left",
			Top:    "middle",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: chartID,
			Width:   "100%",
			Height:  "450px",
		}),
	)

	data := make([]opts.PieData, 0, len(f.Slices))
	for _, s := range f.Slices {
		data = append(data, opts.PieData{Name: s.Label, Value: s.Value})
	}
	pie.AddSeries("Launches", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: "60%",
		}),
	)
	return pie
}

func newScatter(f *figure.ScatterFigure, chartID string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: f.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         f.XLabel,
			Type:         "value",
			NameLocation: "middle",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: f.YLabel,
			Type: "value",
			Min:  0,
			Max:  1,
			AxisLabel: &opts.AxisLabel{
				Show: opts.Bool(true),
			},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "10%",
			Right:  "10%",
			Bottom: "20%",
			Top:    "80",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: chartID,
			Width:   "100%",
			Height:  "450px",
		}),
	)

	for _, s := range f.Series {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.ScatterData{
				Name:       pointName(p),
				Value:      []interface{}{p.PayloadMassKg, p.Class},
				SymbolSize: 10,
			})
		}
		scatter.AddSeries(s.Name, data)
	}
	return scatter
}

func pointName(p figure.Point) string {
	switch {
	case p.FlightNumber > 0 && p.BoosterVersion != "":
		return fmt.Sprintf("Flight %d, %s, %s", p.FlightNumber, p.BoosterVersion, p.Site)
	case p.FlightNumber > 0:
		return fmt.Sprintf("Flight %d, %s", p.FlightNumber, p.Site)
	default:
		return p.Site
	}
}
