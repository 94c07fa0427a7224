package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pocketedit/internal/fsys"
	"pocketedit/internal/input"
	"pocketedit/internal/listnav"
	"pocketedit/internal/repeat"
)

// SkipLines is how far Left/Right move the selection.
const SkipLines = 20

// DefaultIOTimeout bounds one filesystem call.
const DefaultIOTimeout = 10 * time.Second

// FrameMsg carries the sampled input of one frame.
type FrameMsg struct {
	input.Frame
}

// QuitMsg is sent when Start is pressed while browsing.
type QuitMsg struct{}

// DirChangedMsg reports that the membership of Dir changed on disk.
type DirChangedMsg struct {
	Dir string
}

type entriesLoadedMsg struct {
	dir     string
	entries []fsys.Entry
	err     error
	reset   bool
}

// BrowserModel lists one directory at a time and picks files to edit.
type BrowserModel struct {
	fs      fsys.FS
	dir     string
	entries []fsys.Entry
	nav     *listnav.Navigator
	timer   *repeat.Timer
	timeout time.Duration
	width   int
	loading bool
	log     *logrus.Entry
}

// NewBrowserModel creates a browser positioned at dir.
func NewBrowserModel(fs fsys.FS, dir string) BrowserModel {
	return BrowserModel{
		fs:      fs,
		dir:     fsys.Clean(dir),
		nav:     listnav.New(listnav.ViewportHeight),
		timer:   repeat.New(repeat.Browser),
		timeout: DefaultIOTimeout,
		log:     logrus.WithField("component", "browser"),
	}
}

// Init loads the starting directory.
func (m BrowserModel) Init() tea.Cmd {
	return m.load(true)
}

// SetDimensions fits the list to the rows left after the chrome.
func (m *BrowserModel) SetDimensions(width, bodyHeight int) {
	m.width = width
	m.nav.SetHeight(min(listnav.ViewportHeight, max(1, bodyHeight)))
}

// SetTimeout bounds each listing call.
func (m *BrowserModel) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// ResetRepeat stops any auto-repeat in progress.
func (m *BrowserModel) ResetRepeat() { m.timer.Reset() }

func (m BrowserModel) Dir() string                   { return m.dir }
func (m BrowserModel) Entries() []fsys.Entry         { return m.entries }
func (m BrowserModel) Navigator() *listnav.Navigator { return m.nav }
func (m BrowserModel) Loading() bool                 { return m.loading }

// Selected returns the entry under the selection.
func (m BrowserModel) Selected() (fsys.Entry, bool) {
	if len(m.entries) == 0 {
		return fsys.Entry{}, false
	}
	return m.entries[m.nav.Selection()], true
}

func (m BrowserModel) load(reset bool) tea.Cmd {
	fs, dir, timeout := m.fs, m.dir, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := fs.ListDirectory(ctx, dir)
		return entriesLoadedMsg{dir: dir, entries: entries, err: err, reset: reset}
	}
}

// enter switches to dir, clearing the list until the new listing arrives.
func (m *BrowserModel) enter(dir string) tea.Cmd {
	m.dir = dir
	m.entries = nil
	m.nav.SetCount(0)
	m.nav.Reset()
	m.loading = true
	return m.load(true)
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.dir != m.dir {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("path", msg.dir).Warn("list failed")
			m.entries = nil
			m.nav.SetCount(0)
			m.nav.Reset()
			return m, showModal(FailedOpenText("directory", msg.dir))
		}
		m.entries = fsys.Catalog(msg.entries)
		if len(msg.entries) > len(m.entries) {
			m.log.WithFields(logrus.Fields{
				"path":    msg.dir,
				"raw":     len(msg.entries),
				"entries": len(m.entries),
			}).Debug("listing filtered")
		}
		m.nav.SetCount(len(m.entries))
		if msg.reset {
			m.nav.Reset()
		} else {
			m.nav.Clamp()
		}
		return m, nil

	case DirChangedMsg:
		if msg.Dir != m.dir || m.loading {
			return m, nil
		}
		return m, m.load(false)

	case FrameMsg:
		return m.frame(msg.Frame)
	}
	return m, nil
}

func (m BrowserModel) frame(f input.Frame) (BrowserModel, tea.Cmd) {
	pressed, held := f.Directions()
	if axis, fire := m.timer.Poll(pressed, held); fire {
		switch axis {
		case repeat.Up:
			m.nav.Step(listnav.Up)
		case repeat.Down:
			m.nav.Step(listnav.Down)
		case repeat.Left:
			m.nav.PageSkip(listnav.Up, SkipLines)
		case repeat.Right:
			m.nav.PageSkip(listnav.Down, SkipLines)
		}
	}

	if f.Pressed.Has(input.Start) {
		return m, func() tea.Msg { return QuitMsg{} }
	}

	if f.Pressed.Has(input.A) {
		if e, ok := m.Selected(); ok {
			if cmd := m.activate(e); cmd != nil {
				return m, cmd
			}
		}
	}

	if f.Pressed.Has(input.B) {
		m.log.WithField("path", m.dir).Debug("go up")
		return m, m.enter(fsys.Parent(m.dir))
	}
	return m, nil
}

func (m *BrowserModel) activate(e fsys.Entry) tea.Cmd {
	p, ok := fsys.Join(m.dir, e.Name)
	if !ok {
		m.log.WithFields(logrus.Fields{"path": m.dir, "name": e.Name}).Debug("path too long")
		return nil
	}
	if e.IsDir {
		return m.enter(p)
	}
	if !fsys.IsEditable(e.Name) {
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: p} }
}

// Screen renders the browser state.
func (m BrowserModel) Screen() Screen {
	start, end := m.nav.Visible()
	body := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := m.entries[i]
		name := e.Name
		if e.IsDir {
			name = "[" + name + "]"
		}
		if i == m.nav.Selection() {
			body = append(body, "> "+name+" <")
		} else {
			body = append(body, "  "+name)
		}
	}
	s := Screen{Header: m.dir, Body: body}
	if len(m.entries) > 0 {
		s.Cursor = &Marker{Row: m.nav.Selection() - start, Col: -1}
	}
	return s
}
