package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"pocketedit/internal/input"
)

var helpIntro = `
  Browser
  Directories are shown in [brackets]. Only .ini .cfg .txt .json .xml
  files are listed and can be opened.
`

var helpEditor = `
  Editor
  Type to insert at the cursor. Enter splits the line, Backspace joins
  it with the previous one when both fit.
`

var helpStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(1, 3)

// RenderHelp returns the help overlay view.
func RenderHelp(keys input.KeyMap, width, height int) string {
	h := help.New()
	h.ShowAll = true
	var sb strings.Builder
	sb.WriteString(helpIntro)
	sb.WriteString("\n  " + h.View(input.BrowserKeys{KeyMap: keys}) + "\n")
	sb.WriteString(helpEditor)
	sb.WriteString("\n  " + h.View(input.EditorKeys{KeyMap: keys}) + "\n")
	box := helpStyle.Render(sb.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// RenderFooter returns the one-line key hints for the current mode.
func RenderFooter(h help.Model, keys help.KeyMap, width int) string {
	h.ShowAll = false
	h.Width = width
	return h.View(keys)
}
