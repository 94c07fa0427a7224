package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TopMargin is the number of screen rows above the first body row.
const TopMargin = 3

// Marker points at a body cell. A negative Col marks the whole row.
type Marker struct {
	Row int
	Col int
}

// Screen is everything drawn for one frame. Body rows are plain text; styling
// is applied by Render.
type Screen struct {
	Header string
	Body   []string
	Cursor *Marker
}

// Render draws the screen into width columns and height rows.
func (s Screen) Render(width, height int) string {
	if width < 1 {
		width = 1
	}
	rows := make([]string, 0, height)
	rows = append(rows, screenHeaderStyle.Width(width).Render(truncatePath(s.Header, width)))
	for len(rows) < TopMargin && len(rows) < height {
		rows = append(rows, "")
	}
	for i, line := range s.Body {
		if len(rows) >= height {
			break
		}
		rows = append(rows, s.renderRow(i, line, width))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (s Screen) renderRow(i int, line string, width int) string {
	if s.Cursor == nil || s.Cursor.Row != i {
		return truncate(line, width)
	}
	if s.Cursor.Col < 0 {
		return screenSelectedStyle.Width(width).Render(truncate(line, width))
	}

	col := min(s.Cursor.Col, len(line))
	start := 0
	if col >= width {
		start = col - width + 1
	}
	pre := line[start:col]
	under, post := " ", ""
	if col < len(line) {
		under, post = line[col:col+1], line[col+1:]
	}
	out := pre + screenCursorStyle.Render(under)
	room := width - runewidth.StringWidth(pre) - 1
	if room > 0 {
		out += truncate(post, room)
	}
	return out
}

// truncate shortens s to at most n terminal columns.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "…")
}

// truncatePath keeps the tail of a path that does not fit in n columns.
func truncatePath(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && runewidth.StringWidth(string(r))+1 > n {
		r = r[1:]
	}
	return "…" + string(r)
}

var (
	screenHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#7D56F4"))

	screenSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#7D56F4")).
				Foreground(lipgloss.Color("#FFFFFF"))

	screenCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFFFFF")).
				Foreground(lipgloss.Color("#000000"))
)
