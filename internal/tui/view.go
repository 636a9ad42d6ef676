package tui

import (
	"fmt"
	"math"
	"strings"

	"launchdash/internal/figure"
)

const (
	labelWidth  = 16
	minBarWidth = 10
	markerChar  = "●"
	mixedChar   = "◆"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.layout.Title))
	b.WriteString("\n\n")
	b.WriteString(m.viewSites())
	b.WriteString("\n")
	if m.pie != nil {
		b.WriteString(Styles.Box.Render(renderPie(m.pie, m.width-4)))
		b.WriteString("\n")
	}
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("%s %.0f - %.0f", m.layout.SliderLabel, m.rng.Low, m.rng.High)))
	b.WriteString("\n")
	if m.scatter != nil {
		b.WriteString(Styles.Box.Render(renderScatter(m.scatter, m.layout.Slider.Min, m.layout.Slider.Max, m.width-4)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(Styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewSites() string {
	parts := make([]string, len(m.layout.Dropdown.Options))
	for i, opt := range m.layout.Dropdown.Options {
		if i == m.selected {
			parts[i] = Styles.Selected.Render("[" + opt.Label + "]")
		} else {
			parts[i] = Styles.Muted.Render(opt.Label)
		}
	}
	return strings.Join(parts, "  ")
}

// renderPie draws one horizontal bar per slice with its count and share.
func renderPie(f *figure.PieFigure, width int) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render(f.Title))
	b.WriteString("\n")

	total := f.Total()
	if total == 0 {
		b.WriteString(Styles.Empty.Render("No launches"))
		return b.String()
	}

	barWidth := max(width-labelWidth-16, minBarWidth)
	for _, s := range f.Slices {
		n := int(math.Round(float64(s.Value) / float64(total) * float64(barWidth)))
		style := Styles.Bar
		if s.Label == figure.LabelFailed {
			style = Styles.BarFail
		}
		fmt.Fprintf(&b, "%s %s%s %s\n",
			padRight(s.Label, labelWidth),
			style.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			padLeft(fmt.Sprintf("%d %5.1f%%", s.Value, 100*float64(s.Value)/float64(total)), 12),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderScatter bins payload mass into columns across [lo, hi] with one row
// per outcome class. A cell shows the marker of its series, or a mixed marker
// when several series share it.
func renderScatter(f *figure.ScatterFigure, lo, hi float64, width int) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render(f.Title))
	b.WriteString("\n")

	if f.Len() == 0 {
		b.WriteString(Styles.Empty.Render("No launches in range"))
		return b.String()
	}

	const gutter = 4
	cols := max(width-gutter, minBarWidth)
	// cells[class][col] is the series index, -1 for empty, -2 for mixed.
	var cells [2][]int
	for c := range cells {
		cells[c] = make([]int, cols)
		for i := range cells[c] {
			cells[c][i] = -1
		}
	}
	for si, s := range f.Series {
		for _, p := range s.Points {
			if p.Class != 0 && p.Class != 1 {
				continue
			}
			col := binOf(p.PayloadMassKg, lo, hi, cols)
			row := &cells[p.Class]
			switch (*row)[col] {
			case -1:
				(*row)[col] = si
			case si:
			default:
				(*row)[col] = -2
			}
		}
	}

	for _, class := range []int{1, 0} {
		b.WriteString(Styles.Muted.Render(padLeft(fmt.Sprintf("%d |", class), gutter)))
		for _, v := range cells[class] {
			switch v {
			case -1:
				b.WriteString(" ")
			case -2:
				b.WriteString(Styles.Normal.Render(mixedChar))
			default:
				b.WriteString(seriesStyle(v).Render(markerChar))
			}
		}
		b.WriteString("\n")
	}

	loLabel, hiLabel := fmt.Sprintf("%.0f", lo), fmt.Sprintf("%.0f", hi)
	axis := padRight(loLabel, cols-len(hiLabel)) + hiLabel
	b.WriteString(Styles.Muted.Render(strings.Repeat(" ", gutter) + axis))
	b.WriteString("\n")
	b.WriteString(Styles.Muted.Render(strings.Repeat(" ", gutter) + f.XLabel))
	b.WriteString("\n")

	legend := make([]string, len(f.Series))
	for i, s := range f.Series {
		legend[i] = seriesStyle(i).Render(markerChar) + " " + s.Name
	}
	b.WriteString(strings.Join(legend, "  "))
	return b.String()
}

// binOf maps mass onto a column in [0, cols).
func binOf(mass, lo, hi float64, cols int) int {
	if hi <= lo {
		return 0
	}
	col := int((mass - lo) / (hi - lo) * float64(cols-1))
	return min(max(col, 0), cols-1)
}
