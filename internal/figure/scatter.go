package figure

import (
	"fmt"

	"launchdash/internal/launch"
)

// Axis labels for the scatter chart.
const (
	AxisPayload = "Payload Mass (kg)"
	AxisOutcome = "Launch Outcome"
)

// PayloadRange is an inclusive [Low, High] payload mass interval in kg.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// FullRange returns the range spanning every record in ds.
func FullRange(ds *launch.Dataset) PayloadRange {
	return PayloadRange{Low: ds.MinPayload(), High: ds.MaxPayload()}
}

// Contains reports whether mass lies within the range, bounds included.
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}

// Point is one plotted launch.
type Point struct {
	PayloadMassKg  float64 `json:"x"`
	Class          int     `json:"y"`
	Site           string  `json:"site"`
	FlightNumber   int     `json:"flight_number,omitempty"`
	BoosterVersion string  `json:"booster_version,omitempty"`
}

// Series groups the points of one booster version category.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ScatterFigure plots payload mass against outcome class, one series per
// booster version category.
type ScatterFigure struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
}

func (s *ScatterFigure) Kind() Kind          { return KindScatter }
func (s *ScatterFigure) FigureTitle() string { return s.Title }

// Len returns the number of plotted points across all series.
func (s *ScatterFigure) Len() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// Points returns every plotted point, series by series.
func (s *ScatterFigure) Points() []Point {
	out := make([]Point, 0, s.Len())
	for _, series := range s.Series {
		out = append(out, series.Points...)
	}
	return out
}

// Scatter computes the payload/outcome scatter chart for the launches inside
// rng, restricted to site unless site is AllSites. Series appear in the order
// their category is first seen among the kept rows.
func Scatter(ds *launch.Dataset, site string, rng PayloadRange) *ScatterFigure {
	fig := &ScatterFigure{
		Title:  scatterTitle(site),
		XLabel: AxisPayload,
		YLabel: AxisOutcome,
		Series: []Series{},
	}

	byCategory := make(map[string]int)
	ds.Each(func(r launch.Record) {
		if !rng.Contains(r.PayloadMassKg) {
			return
		}
		if site != AllSites && r.Site != site {
			return
		}
		i, ok := byCategory[r.BoosterCategory]
		if !ok {
			i = len(fig.Series)
			byCategory[r.BoosterCategory] = i
			fig.Series = append(fig.Series, Series{Name: r.BoosterCategory})
		}
		fig.Series[i].Points = append(fig.Series[i].Points, Point{
			PayloadMassKg:  r.PayloadMassKg,
			Class:          r.Class,
			Site:           r.Site,
			FlightNumber:   r.FlightNumber,
			BoosterVersion: r.BoosterVersion,
		})
	})
	return fig
}

func scatterTitle(site string) string {
	if site == AllSites {
		return "Success by Payload Mass for All Sites"
	}
	return fmt.Sprintf("Success by Payload Mass for %s", site)
}
