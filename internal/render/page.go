package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/yosssi/gohtml"

	"launchdash/internal/figure"
)

// Panel is one chart placed on a snapshot page.
type Panel struct {
	ID     string
	Figure figure.Figure
}

// WritePage renders a self-contained, non-interactive HTML page holding the
// given panels in order. The markup is indented for readability.
func WritePage(w io.Writer, title string, panels []Panel) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, p := range panels {
		c, err := NewChart(p.Figure, p.ID)
		if err != nil {
			return fmt.Errorf("panel %s: %w", p.ID, err)
		}
		r, ok := c.(components.Charter)
		if !ok {
			return fmt.Errorf("panel %s: %w: %T is not a page chart", p.ID, ErrUnsupportedFigure, c)
		}
		page.AddCharts(r)
	}

	var buf strings.Builder
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	out := strings.Replace(buf.String(), "<body>",
		fmt.Sprintf("<body>\n<h1 style=\"text-align:center;color:#503D36;font-size:40px\">%s</h1>", html.EscapeString(title)), 1)
	if _, err := io.WriteString(w, gohtml.Format(out)); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}
