// Package tui is a terminal rendition of the launch dashboard. It drives the
// same callback router as the web page and draws the figures as text.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"launchdash/internal/dashboard"
	"launchdash/internal/figure"
)

// defaultWidth is used until the first WindowSizeMsg arrives.
const defaultWidth = 80

// Model is the Bubble Tea model for the terminal dashboard.
type Model struct {
	ctx    context.Context
	router *dashboard.Router
	layout dashboard.Layout

	selected int
	rng      figure.PayloadRange

	pie     *figure.PieFigure
	scatter *figure.ScatterFigure
	err     error

	keys  keyMap
	help  help.Model
	width int
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// New creates a model showing the layout defaults.
func New(ctx context.Context, router *dashboard.Router) *Model {
	layout := router.Layout()
	m := &Model{
		ctx:    ctx,
		router: router,
		layout: layout,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  defaultWidth,
	}
	m.help.Styles.ShortKey = Styles.Selected
	m.help.Styles.ShortDesc = Styles.Muted
	m.help.Styles.ShortSeparator = Styles.Muted
	m.reset()
	return m
}

// Site returns the selected dropdown value.
func (m *Model) Site() string {
	return m.layout.Dropdown.Options[m.selected].Value
}

// Range returns the selected payload range.
func (m *Model) Range() figure.PayloadRange {
	return m.rng
}

// Pie returns the current pie figure.
func (m *Model) Pie() *figure.PieFigure {
	return m.pie
}

// Scatter returns the current scatter figure.
func (m *Model) Scatter() *figure.ScatterFigure {
	return m.scatter
}

// Err returns the last update error, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.layout.Slider.Step
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.layout.Dropdown.Options)-1 {
			m.selected++
			m.refresh()
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refresh()
		}
	case key.Matches(msg, m.keys.LowDown):
		m.setRange(m.rng.Low-step, m.rng.High)
	case key.Matches(msg, m.keys.LowUp):
		m.setRange(m.rng.Low+step, m.rng.High)
	case key.Matches(msg, m.keys.HighDown):
		m.setRange(m.rng.Low, m.rng.High-step)
	case key.Matches(msg, m.keys.HighUp):
		m.setRange(m.rng.Low, m.rng.High+step)
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}
	return m, nil
}

// setRange clamps both bounds to the slider extent and keeps low <= high,
// then recomputes the scatter. The pie does not depend on the range.
func (m *Model) setRange(low, high float64) {
	lo, hi := m.layout.Slider.Min, m.layout.Slider.Max
	low = min(max(low, lo), hi)
	high = min(max(high, lo), hi)
	if low > high {
		return
	}
	if low == m.rng.Low && high == m.rng.High {
		return
	}
	m.rng = figure.PayloadRange{Low: low, High: high}
	m.refreshScatter()
}

func (m *Model) reset() {
	m.selected = 0
	for i, opt := range m.layout.Dropdown.Options {
		if opt.Value == m.layout.Dropdown.Value {
			m.selected = i
			break
		}
	}
	m.rng = figure.PayloadRange{Low: m.layout.Slider.Value[0], High: m.layout.Slider.Value[1]}
	m.refresh()
}

func (m *Model) refresh() {
	m.refreshPie()
	m.refreshScatter()
}

func (m *Model) inputs() map[dashboard.ID]any {
	return map[dashboard.ID]any{
		{Component: dashboard.SiteDropdown, Property: dashboard.PropValue}:  m.Site(),
		{Component: dashboard.PayloadSlider, Property: dashboard.PropValue}: []float64{m.rng.Low, m.rng.High},
	}
}

func (m *Model) refreshPie() {
	fig, err := m.router.Dispatch(m.ctx, dashboard.ID{Component: dashboard.PieChart, Property: dashboard.PropFigure}, m.inputs())
	if err != nil {
		m.err = err
		return
	}
	pie, ok := fig.(*figure.PieFigure)
	if !ok {
		m.err = fmt.Errorf("unexpected figure %T for %s", fig, dashboard.PieChart)
		return
	}
	m.pie, m.err = pie, nil
}

func (m *Model) refreshScatter() {
	fig, err := m.router.Dispatch(m.ctx, dashboard.ID{Component: dashboard.ScatterChart, Property: dashboard.PropFigure}, m.inputs())
	if err != nil {
		m.err = err
		return
	}
	scatter, ok := fig.(*figure.ScatterFigure)
	if !ok {
		m.err = fmt.Errorf("unexpected figure %T for %s", fig, dashboard.ScatterChart)
		return
	}
	m.scatter, m.err = scatter, nil
}

// Run starts the terminal dashboard and blocks until the user quits.
func Run(ctx context.Context, router *dashboard.Router) error {
	p := tea.NewProgram(New(ctx, router), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
