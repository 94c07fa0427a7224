package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pocketedit/internal/input"
	"pocketedit/internal/repeat"
	"pocketedit/internal/textedit"
)

// OpenEditorMsg requests opening a file in the editor.
type OpenEditorMsg struct {
	Path string
}

// EditorContentLoadedMsg carries loaded file content for the editor.
type EditorContentLoadedMsg struct {
	Path  string
	Lines []string
	Err   error
}

// EditorSaveMsg requests writing the buffer back to Path.
type EditorSaveMsg struct {
	Path  string
	Lines []string
}

// EditorSaveDoneMsg reports the result of a save operation.
type EditorSaveDoneMsg struct {
	Err error
}

// EditorCloseMsg requests closing the editor and returning to the file browser.
type EditorCloseMsg struct{}

// SavedText is shown after a successful save.
var SavedText = "File saved!\n" + dismissHint + " to exit or continue editing."

// EditorModel edits one file through the on-screen keyboard and the d-pad.
type EditorModel struct {
	path   string
	ed     *textedit.Editor
	timer  *repeat.Timer
	saving bool
	log    *logrus.Entry
}

// NewEditorModel opens lines for editing. Lines past the capacity limits are
// truncated.
func NewEditorModel(path string, lines []string) EditorModel {
	buf := textedit.Load(lines)
	log := logrus.WithField("component", "editor")
	if len(lines) > buf.Len() {
		log.WithFields(logrus.Fields{"path": path, "lines": len(lines)}).Debug("truncated to capacity")
	}
	return EditorModel{
		path:  path,
		ed:    textedit.NewEditor(buf, textedit.ViewportHeight),
		timer: repeat.New(repeat.Editor),
		log:   log,
	}
}

// SetDimensions fits the viewport to the rows left after the chrome.
func (m *EditorModel) SetDimensions(width, bodyHeight int) {
	m.ed.SetHeight(min(textedit.ViewportHeight, max(1, bodyHeight)))
}

// ResetRepeat stops any auto-repeat in progress.
func (m *EditorModel) ResetRepeat() { m.timer.Reset() }

func (m EditorModel) Path() string             { return m.path }
func (m EditorModel) Editor() *textedit.Editor { return m.ed }
func (m EditorModel) Saving() bool             { return m.saving }

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case EditorSaveDoneMsg:
		m.saving = false
		if msg.Err != nil {
			m.log.WithError(msg.Err).WithField("path", m.path).Warn("save failed")
			return m, showModal(SaveFailedText(msg.Err))
		}
		m.ed.MarkSaved()
		m.log.WithField("path", m.path).Info("saved")
		return m, showModal(SavedText)

	case FrameMsg:
		return m.frame(msg.Frame)
	}
	return m, nil
}

func (m EditorModel) frame(f input.Frame) (EditorModel, tea.Cmd) {
	if f.Key != 0 && !m.ed.HandleKey(f.Key) {
		cur := m.ed.Cursor()
		m.log.WithFields(logrus.Fields{"key": f.Key, "row": cur.Row, "col": cur.Col}).Debug("key refused")
	}

	pressed, held := f.Directions()
	if axis, fire := m.timer.Poll(pressed, held); fire {
		switch axis {
		case repeat.Up:
			m.ed.Move(textedit.Up)
		case repeat.Down:
			m.ed.Move(textedit.Down)
		case repeat.Left:
			m.ed.Move(textedit.Left)
		case repeat.Right:
			m.ed.Move(textedit.Right)
		}
	}

	if f.Pressed.Has(input.Start) && !m.saving {
		m.saving = true
		path, lines := m.path, m.ed.Lines()
		return m, func() tea.Msg { return EditorSaveMsg{Path: path, Lines: lines} }
	}
	if f.Pressed.Has(input.B) {
		return m, func() tea.Msg { return EditorCloseMsg{} }
	}
	return m, nil
}

// Screen renders the visible part of the buffer with the cursor.
func (m EditorModel) Screen() Screen {
	start, end := m.ed.Visible()
	body := make([]string, 0, end-start)
	for row := start; row < end; row++ {
		body = append(body, m.ed.Line(row))
	}
	header := " " + m.path
	if m.ed.Dirty() {
		header += " [modified]"
	}
	cur := m.ed.Cursor()
	return Screen{
		Header: header,
		Body:   body,
		Cursor: &Marker{Row: cur.Row - start, Col: cur.Col},
	}
}
