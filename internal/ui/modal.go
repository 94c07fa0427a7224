package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pocketedit/internal/input"
)

// ShowModalMsg asks the program to block on a message until it is dismissed.
type ShowModalMsg struct {
	Text string
}

func showModal(text string) tea.Cmd {
	return func() tea.Msg { return ShowModalMsg{Text: text} }
}

// dismissHint names the key that closes a modal.
var dismissHint = "Press " + input.DefaultKeyMap().B.Help().Key

// FailedOpenText is shown when a directory or file cannot be opened.
func FailedOpenText(what, path string) string {
	return "Failed to open " + what + ":\n" + path + "\n" + dismissHint + " to return."
}

// SaveFailedText is the modal shown when a write fails.
func SaveFailedText(err error) string {
	return "Save failed:\n" + err.Error() + "\n" + dismissHint + " to return."
}

// ModalState is the state of a Modal.
type ModalState int

const (
	ModalIdle ModalState = iota
	ModalAwaitingDismiss
)

// Modal is a blocking message. While it awaits dismissal it takes every
// frame; only a fresh B press closes it.
type Modal struct {
	state ModalState
	text  string
}

// Open shows text and waits for dismissal.
func (m *Modal) Open(text string) {
	m.state = ModalAwaitingDismiss
	m.text = text
}

// Active reports whether the modal is waiting for dismissal.
func (m Modal) Active() bool { return m.state == ModalAwaitingDismiss }

// State returns the current state.
func (m Modal) State() ModalState { return m.state }

// Text returns the message being shown.
func (m Modal) Text() string { return m.text }

// Frame consumes one frame and reports whether it dismissed the modal.
func (m *Modal) Frame(f input.Frame) bool {
	if m.state != ModalAwaitingDismiss || !f.Pressed.Has(input.B) {
		return false
	}
	m.state = ModalIdle
	m.text = ""
	return true
}

// View draws the modal centred in width by height.
func (m Modal) View(width, height int) string {
	box := modalStyle.Render(m.text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(1, 3)
