package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the terminal dashboard
const (
	ColorAccent    = "86"  // Cyan/green - titles, success
	ColorHighlight = "205" // Magenta - selection, borders
	ColorDanger    = "196" // Red - failures, errors
	ColorMuted     = "241" // Gray - hints, axes
	ColorText      = "252" // Light gray - normal text
)

// seriesColors cycle across booster categories in the scatter grid.
var seriesColors = []string{"86", "205", "208", "39", "226", "141", "160"}

// Styles contains shared style definitions.
var Styles = struct {
	Title    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Section  lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Bar      lipgloss.Style
	BarFail  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Bar: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	BarFail: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[i%len(seriesColors)]))
}
