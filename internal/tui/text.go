package tui

import "github.com/mattn/go-runewidth"

// ellipsis marks truncated labels.
const ellipsis = "…"

// truncate fits s within maxWidth terminal columns, appending an ellipsis
// when it had to cut.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - runewidth.StringWidth(ellipsis)
	if avail < 0 {
		return ellipsis
	}

	out := make([]rune, 0, len(s))
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > avail {
			break
		}
		out = append(out, r)
		w += rw
	}
	return string(out) + ellipsis
}

// padRight pads or truncates s to exactly width columns.
func padRight(s string, width int) string {
	if runewidth.StringWidth(s) >= width {
		return truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// padLeft right-aligns s in width columns, truncating if needed.
func padLeft(s string, width int) string {
	if runewidth.StringWidth(s) >= width {
		return truncate(s, width)
	}
	return runewidth.FillLeft(s, width)
}
