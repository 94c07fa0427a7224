package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode is what the program is doing.
type Mode int

const (
	Browsing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "BROWSE"
	case Editing:
		return "EDIT"
	default:
		return "UNKNOWN"
	}
}

var (
	modeActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	modeInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Background(lipgloss.Color("#1A1A1A")).
				Padding(0, 2)

	modeBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0F0F0F"))
)

// RenderModeBar shows both modes with the active one highlighted, and the
// backend on the right.
func RenderModeBar(active Mode, backend string, width int) string {
	var parts []string
	for _, mode := range []Mode{Browsing, Editing} {
		if mode == active {
			parts = append(parts, modeActiveStyle.Render("● "+mode.String()))
		} else {
			parts = append(parts, modeInactiveStyle.Render("○ "+mode.String()))
		}
	}
	bar := strings.Join(parts, " ")

	right := modeInactiveStyle.Render(truncatePath(backend, max(0, width-lipgloss.Width(bar)-6)))
	if gap := width - lipgloss.Width(bar) - lipgloss.Width(right); gap > 0 {
		bar += strings.Repeat(" ", gap) + right
	}
	return modeBarStyle.Width(width).Render(bar)
}

// BackendLabel names where files come from.
func BackendLabel(user, host, root string) string {
	if host == "" {
		return "local:" + root
	}
	if user != "" {
		return "ssh:" + user + "@" + host + ":" + root
	}
	return "ssh:" + host + ":" + root
}
