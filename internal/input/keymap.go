package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds terminal keys to device buttons.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	A     key.Binding
	B     key.Binding
	Start key.Binding

	// Only active while browsing; in text entry these keys are text.
	BackB     key.Binding
	QuitStart key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←/pgup", "page up"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "pgdown"),
			key.WithHelp("→/pgdn", "page down"),
		),
		A: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		B: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Start: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		BackB: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "up a dir"),
		),
		QuitStart: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// BrowserKeys implements help.KeyMap for the file browser.
type BrowserKeys struct{ KeyMap }

func (k BrowserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.A, k.BackB, k.QuitStart, k.Help}
}

func (k BrowserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B, k.BackB},
		{k.QuitStart, k.Help, k.Quit},
	}
}

// EditorKeys implements help.KeyMap for the editor.
type EditorKeys struct{ KeyMap }

func (k EditorKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows", "move")),
		k.Start,
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		k.Quit,
	}
}

func (k EditorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
