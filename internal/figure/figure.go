// Package figure computes the dashboard's chart data from the launch
// dataset. Both updaters are pure functions of their inputs.
package figure

import (
	"fmt"
	"slices"

	"launchdash/internal/launch"
)

// AllSites is the dropdown value meaning "no site filter".
const AllSites = "All"

// Kind identifies the chart type a Figure describes.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Figure is the result of an updater. Implemented by *PieFigure and
// *ScatterFigure.
type Figure interface {
	Kind() Kind
	FigureTitle() string
}

// Slice is one pie segment.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// PieFigure is a pie chart with explicit label/value pairs.
type PieFigure struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

func (p *PieFigure) Kind() Kind          { return KindPie }
func (p *PieFigure) FigureTitle() string { return p.Title }

// Total returns the sum of all slice values.
func (p *PieFigure) Total() int {
	total := 0
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Value returns the value of the slice labelled label, or 0.
func (p *PieFigure) Value(label string) int {
	for _, s := range p.Slices {
		if s.Label == label {
			return s.Value
		}
	}
	return 0
}

// Pie slice labels for a single-site selection.
const (
	LabelSuccess = "Success"
	LabelFailed  = "Failed"
)

// Pie computes the success pie chart.
//
// For AllSites the slices are successful launch counts per site, largest
// first, omitting sites with no successes. For a single site there are
// always exactly two slices, Success then Failed. An unknown site yields two
// zero slices.
func Pie(ds *launch.Dataset, site string) *PieFigure {
	if site == AllSites {
		counts := make(map[string]int)
		ds.Each(func(r launch.Record) {
			if r.Success() {
				counts[r.Site]++
			}
		})

		out := make([]Slice, 0, len(counts))
		for s, n := range counts {
			out = append(out, Slice{Label: s, Value: n})
		}
		slices.SortFunc(out, func(a, b Slice) int {
			if a.Value != b.Value {
				return b.Value - a.Value
			}
			return ds.SiteOrder(a.Label) - ds.SiteOrder(b.Label)
		})
		return &PieFigure{
			Title:  "Total Successful Launches by Site",
			Slices: out,
		}
	}

	var success, failed int
	ds.Each(func(r launch.Record) {
		if r.Site != site {
			return
		}
		if r.Success() {
			success++
		} else {
			failed++
		}
	})
	return &PieFigure{
		Title: fmt.Sprintf("Success vs. Failed Launches for %s", site),
		Slices: []Slice{
			{Label: LabelSuccess, Value: success},
			{Label: LabelFailed, Value: failed},
		},
	}
}
