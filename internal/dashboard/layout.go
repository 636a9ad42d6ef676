// Package dashboard declares the dashboard's component tree and the static
// table that routes input changes to the figure updaters.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"launchdash/internal/figure"
	"launchdash/internal/launch"
)

// Component identifiers.
const (
	SiteDropdown  = "site-dropdown"
	PayloadSlider = "payload-slider"
	PieChart      = "success-pie-chart"
	ScatterChart  = "success-payload-scatter-chart"
)

// Bound properties.
const (
	PropValue  = "value"
	PropFigure = "figure"
)

// SliderStep is the payload slider increment and mark spacing in kg.
const SliderStep = 1000

// ErrBadID is returned by ParseID for strings not of the form component.property.
var ErrBadID = errors.New("id must be <component>.<property>")

// ID names one property of one component.
type ID struct {
	Component string `json:"id"`
	Property  string `json:"property"`
}

func (id ID) String() string {
	return id.Component + "." + id.Property
}

// ParseID parses "component.property". The split is on the last dot so
// component ids may contain dots.
func ParseID(s string) (ID, error) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return ID{}, fmt.Errorf("%w: %q", ErrBadID, s)
	}
	return ID{Component: s[:i], Property: s[i+1:]}, nil
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown is the launch site selector.
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labelled tick on the range slider.
type Mark struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// RangeSlider is the payload range selector.
type RangeSlider struct {
	ID    string     `json:"id"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// Graph is a chart placeholder.
type Graph struct {
	ID string `json:"id"`
}

// Layout is the static component tree, top to bottom.
type Layout struct {
	Title        string      `json:"title"`
	Dropdown     Dropdown    `json:"dropdown"`
	PieGraph     Graph       `json:"pie_graph"`
	SliderLabel  string      `json:"slider_label"`
	Slider       RangeSlider `json:"slider"`
	ScatterGraph Graph       `json:"scatter_graph"`
}

// NewLayout declares the dashboard for ds.
func NewLayout(ds *launch.Dataset) Layout {
	options := []Option{{Label: "All Sites", Value: figure.AllSites}}
	for _, site := range ds.Sites() {
		options = append(options, Option{Label: site, Value: site})
	}

	return Layout{
		Title: "SpaceX Launch Records Dashboard",
		Dropdown: Dropdown{
			ID:          SiteDropdown,
			Options:     options,
			Value:       figure.AllSites,
			Placeholder: "Select a Launch site here",
			Searchable:  true,
		},
		PieGraph:    Graph{ID: PieChart},
		SliderLabel: "Payload range (Kg):",
		Slider: RangeSlider{
			ID:    PayloadSlider,
			Min:   ds.MinPayload(),
			Max:   ds.MaxPayload(),
			Step:  SliderStep,
			Marks: sliderMarks(ds.MinPayload(), ds.MaxPayload()),
			Value: [2]float64{ds.MinPayload(), ds.MaxPayload()},
		},
		ScatterGraph: Graph{ID: ScatterChart},
	}
}

// sliderMarks places a mark every SliderStep from the truncated minimum up to
// the first step at or past the truncated maximum.
func sliderMarks(lo, hi float64) []Mark {
	start, stop := int(math.Trunc(lo)), int(math.Trunc(hi))+SliderStep
	var marks []Mark
	for v := start; v < stop; v += SliderStep {
		marks = append(marks, Mark{Value: v, Label: strconv.Itoa(v)})
	}
	return marks
}

// Positions lists the values the slider handles can rest on: the exact
// minimum, every mark strictly inside the range, and the exact maximum. The
// ends stay unsnapped so the default value covers every record.
func (s RangeSlider) Positions() []float64 {
	out := []float64{s.Min}
	if s.Step > 0 {
		for v := math.Trunc(s.Min) + s.Step; v < s.Max; v += s.Step {
			if v > s.Min {
				out = append(out, v)
			}
		}
	}
	if s.Max > s.Min {
		out = append(out, s.Max)
	}
	return out
}

// LastPosition is the index of the maximum in Positions.
func (s RangeSlider) LastPosition() int {
	return len(s.Positions()) - 1
}

// PositionOf returns the index in Positions nearest to v.
func (s RangeSlider) PositionOf(v float64) int {
	positions := s.Positions()
	best := 0
	for i, p := range positions {
		if math.Abs(p-v) < math.Abs(positions[best]-v) {
			best = i
		}
	}
	return best
}

// Defaults returns the initial value of every input component.
func (l Layout) Defaults() map[ID]any {
	return map[ID]any{
		{Component: SiteDropdown, Property: PropValue}:  l.Dropdown.Value,
		{Component: PayloadSlider, Property: PropValue}: []float64{l.Slider.Value[0], l.Slider.Value[1]},
	}
}
