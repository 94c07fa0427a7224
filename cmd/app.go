package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"pocketedit/internal/config"
	"pocketedit/internal/fsys"
	"pocketedit/internal/input"
	"pocketedit/internal/ui"
)

// chromeRows is the mode bar plus the footer.
const chromeRows = 2

// dirWatcher reports changes to the directory being browsed.
type dirWatcher interface {
	Watch(dir string) error
	Changes() <-chan string
}

// frameMsg drives one 60 Hz frame.
type frameMsg time.Time

// watchedChangeMsg is delivered by the watcher goroutine.
type watchedChangeMsg struct {
	dir string
}

// AppModel is the root application model. It owns the browser for the whole
// run and an editor only while editing. Between an open request and its
// result, opening holds the path and browser input is suspended.
type AppModel struct {
	mode     ui.Mode
	browser  ui.BrowserModel
	editor   *ui.EditorModel
	opening  string
	modal    ui.Modal
	sampler  *input.Sampler
	keys     input.KeyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
	fs       fsys.FS
	watcher  dirWatcher
	backend  string
	timeout  time.Duration
	log      *logrus.Entry
}

func newAppModel(fs fsys.FS, backend string, cfg *config.Config, w dirWatcher) AppModel {
	keys := input.DefaultKeyMap()
	timeout := ui.DefaultIOTimeout
	if cfg.Remote.Enabled() && cfg.Remote.Timeout > 0 {
		timeout = time.Duration(cfg.Remote.Timeout)
	}
	browser := ui.NewBrowserModel(fs, "/")
	browser.SetTimeout(timeout)
	m := AppModel{
		mode:    ui.Browsing,
		browser: browser,
		sampler: input.NewSampler(keys, cfg.HoldFrames),
		keys:    keys,
		help:    help.New(),
		fs:      fs,
		watcher: w,
		backend: backend,
		timeout: timeout,
		log:     logrus.WithField("component", "app"),
	}
	m.watch()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.browser.Init(), tick(), m.waitForChange())
}

func tick() tea.Cmd {
	return tea.Tick(input.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// waitForChange blocks until the watcher reports the current directory.
func (m AppModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		dir, ok := <-changes
		if !ok {
			return nil
		}
		return watchedChangeMsg{dir: dir}
	}
}

func (m *AppModel) watch() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(m.browser.Dir()); err != nil {
		m.log.WithError(err).WithField("path", m.browser.Dir()).Debug("watch failed")
	}
}

func (m *AppModel) layout() {
	body := max(1, m.height-chromeRows-ui.TopMargin)
	m.browser.SetDimensions(m.width, body)
	if m.editor != nil {
		m.editor.SetDimensions(m.width, body)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)

	case frameMsg:
		next, cmd := m.frame(m.sampler.Sample())
		return next, tea.Batch(cmd, tick())

	case ui.ShowModalMsg:
		m.modal.Open(msg.Text)
		m.browser.ResetRepeat()
		if m.editor != nil {
			m.editor.ResetRepeat()
		}
		return m, nil

	case ui.QuitMsg:
		m.log.Info("quit")
		return m, tea.Quit

	case ui.OpenEditorMsg:
		if m.editor != nil || m.opening != "" {
			m.log.WithField("path", msg.Path).Debug("open already in progress")
			return m, nil
		}
		m.opening = msg.Path
		m.browser.ResetRepeat()
		return m, m.readFile(msg.Path)

	case ui.EditorContentLoadedMsg:
		if m.editor != nil || msg.Path != m.opening {
			m.log.WithField("path", msg.Path).Debug("stale read dropped")
			return m, nil
		}
		m.opening = ""
		if msg.Err != nil {
			m.log.WithError(msg.Err).WithField("path", msg.Path).Warn("open failed")
			return m, func() tea.Msg { return ui.ShowModalMsg{Text: ui.FailedOpenText("file", msg.Path)} }
		}
		m.log.WithFields(logrus.Fields{"path": msg.Path, "lines": len(msg.Lines)}).Info("editing")
		ed := ui.NewEditorModel(msg.Path, msg.Lines)
		m.editor = &ed
		m.mode = ui.Editing
		m.sampler.SetTextEntry(true)
		m.browser.ResetRepeat()
		m.layout()
		return m, nil

	case ui.EditorSaveMsg:
		return m, m.writeFile(msg.Path, msg.Lines)

	case ui.EditorSaveDoneMsg:
		if m.editor == nil {
			if msg.Err == nil {
				return m, nil
			}
			m.log.WithError(msg.Err).Warn("save failed after close")
			text := ui.SaveFailedText(msg.Err)
			return m, func() tea.Msg { return ui.ShowModalMsg{Text: text} }
		}
		ed, cmd := m.editor.Update(msg)
		m.editor = &ed
		return m, cmd

	case ui.EditorCloseMsg:
		if m.editor != nil {
			m.log.WithField("path", m.editor.Path()).Debug("editor closed")
		}
		m.editor = nil
		m.mode = ui.Browsing
		m.sampler.SetTextEntry(false)
		m.browser.ResetRepeat()
		dir := m.browser.Dir()
		return m, func() tea.Msg { return ui.DirChangedMsg{Dir: dir} }

	case watchedChangeMsg:
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(ui.DirChangedMsg{Dir: msg.dir})
		return m, tea.Batch(cmd, m.waitForChange())
	}

	return m.updateBrowser(msg)
}

// updateBrowser forwards msg to the browser and follows it with the watcher.
func (m AppModel) updateBrowser(msg tea.Msg) (AppModel, tea.Cmd) {
	prev := m.browser.Dir()
	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	if m.browser.Dir() != prev {
		m.watch()
	}
	return m, cmd
}

func (m AppModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.log.Info("interrupted")
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.B) {
			m.showHelp = false
		}
		return m, nil
	}
	if !m.sampler.TextEntry() && !m.modal.Active() && key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		m.sampler.Release()
		m.browser.ResetRepeat()
		return m, nil
	}
	m.sampler.Observe(msg)
	return m, nil
}

// frame routes one sampled frame to whatever currently owns input.
func (m AppModel) frame(f input.Frame) (AppModel, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	if m.modal.Active() {
		if m.modal.Frame(f) {
			m.log.Debug("modal dismissed")
		}
		return m, nil
	}
	if m.editor != nil {
		ed, cmd := m.editor.Update(ui.FrameMsg{Frame: f})
		m.editor = &ed
		return m, cmd
	}
	if m.opening != "" {
		return m, nil
	}
	return m.updateBrowser(ui.FrameMsg{Frame: f})
}

func (m AppModel) readFile(path string) tea.Cmd {
	fs, timeout := m.fs, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		lines, err := fs.ReadLines(ctx, path)
		return ui.EditorContentLoadedMsg{Path: path, Lines: lines, Err: err}
	}
}

func (m AppModel) writeFile(path string, lines []string) tea.Cmd {
	fs, timeout := m.fs, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ui.EditorSaveDoneMsg{Err: fs.WriteLines(ctx, path, lines)}
	}
}

func (m AppModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return ui.RenderHelp(m.keys, m.width, m.height)
	}
	if m.modal.Active() {
		return m.modal.View(m.width, m.height)
	}

	var screen ui.Screen
	var keys help.KeyMap = input.BrowserKeys{KeyMap: m.keys}
	if m.editor != nil {
		screen = m.editor.Screen()
		keys = input.EditorKeys{KeyMap: m.keys}
	} else {
		screen = m.browser.Screen()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.RenderModeBar(m.mode, m.backend, m.width),
		screen.Render(m.width, max(1, m.height-chromeRows)),
		ui.RenderFooter(m.help, keys, m.width),
	)
}
