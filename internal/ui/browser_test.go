package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pocketedit/internal/fsys"
	"pocketedit/internal/input"
)

// fakeFS serves fixed listings and files.
type fakeFS struct {
	dirs   map[string][]fsys.Entry
	files  map[string][]string
	listed []string
}

func (f *fakeFS) ListDirectory(_ context.Context, dir string) ([]fsys.Entry, error) {
	f.listed = append(f.listed, dir)
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, fsys.Unavailable("list", dir, errors.New("no such directory"))
	}
	return entries, nil
}

func (f *fakeFS) ReadLines(_ context.Context, file string) ([]string, error) {
	lines, ok := f.files[file]
	if !ok {
		return nil, fsys.Unavailable("open", file, errors.New("no such file"))
	}
	return lines, nil
}

func (f *fakeFS) WriteLines(_ context.Context, file string, lines []string) error {
	f.files[file] = lines
	return nil
}

func sampleFS() *fakeFS {
	return &fakeFS{
		dirs: map[string][]fsys.Entry{
			"/": {
				{Name: "b.txt"},
				{Name: "games", IsDir: true},
				{Name: "a.txt"},
				{Name: "photo.png"},
			},
			"/games": {
				{Name: "save.ini"},
			},
		},
		files: map[string][]string{},
	}
}

func press(b input.Buttons) FrameMsg { return FrameMsg{input.Frame{Pressed: b, Held: b}} }

func hold(b input.Buttons) FrameMsg { return FrameMsg{input.Frame{Held: b}} }

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func loadedBrowser(t *testing.T, fs fsys.FS, dir string) BrowserModel {
	t.Helper()
	m := NewBrowserModel(fs, dir)
	m, cmd := m.Update(run(m.Init()))
	if cmd != nil {
		t.Fatalf("unexpected command after initial load: %T", run(cmd))
	}
	return m
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestBrowserListsCatalog(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	got := m.Entries()
	if len(got) != 3 {
		t.Fatalf("entries = %v, want 3", got)
	}
	if got[0].Name != "games" || got[1].Name != "a.txt" || got[2].Name != "b.txt" {
		t.Errorf("entries order = %v", got)
	}
}

func TestBrowserScreen(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	s := m.Screen()
	if s.Header != "/" {
		t.Errorf("Header = %q, want /", s.Header)
	}
	want := []string{"> [games] <", "  a.txt", "  b.txt"}
	if strings.Join(s.Body, "|") != strings.Join(want, "|") {
		t.Errorf("Body = %q, want %q", s.Body, want)
	}
	if s.Cursor == nil || s.Cursor.Row != 0 || s.Cursor.Col != -1 {
		t.Errorf("Cursor = %+v, want row 0 highlight", s.Cursor)
	}
}

func TestBrowserEmptyScreenHasNoCursor(t *testing.T) {
	fs := &fakeFS{dirs: map[string][]fsys.Entry{"/": nil}}
	m := loadedBrowser(t, fs, "/")
	if s := m.Screen(); s.Cursor != nil || len(s.Body) != 0 {
		t.Errorf("empty screen = %+v", s)
	}
}

func TestBrowserListFailureOpensModal(t *testing.T) {
	m := NewBrowserModel(sampleFS(), "/missing")
	m, cmd := m.Update(run(m.Init()))
	msg, ok := run(cmd).(ShowModalMsg)
	if !ok {
		t.Fatal("expected ShowModalMsg")
	}
	if !strings.Contains(msg.Text, "Failed to open directory:\n/missing") {
		t.Errorf("modal text = %q", msg.Text)
	}
	if len(m.Entries()) != 0 || m.Navigator().Len() != 0 {
		t.Error("failed listing should leave an empty list")
	}
}

func TestBrowserIgnoresStaleListing(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	m, _ = m.Update(entriesLoadedMsg{dir: "/elsewhere", entries: []fsys.Entry{{Name: "x.txt"}}})
	if len(m.Entries()) != 3 {
		t.Errorf("stale listing applied: %v", m.Entries())
	}
}

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

func TestBrowserStepAndRepeat(t *testing.T) {
	fs := &fakeFS{dirs: map[string][]fsys.Entry{"/": nil}}
	for i := 0; i < 30; i++ {
		fs.dirs["/"] = append(fs.dirs["/"], fsys.Entry{Name: fmt.Sprintf("f%02d.txt", i)})
	}
	m := loadedBrowser(t, fs, "/")

	m, _ = m.Update(press(input.Down))
	if got := m.Navigator().Selection(); got != 1 {
		t.Fatalf("after press selection = %d, want 1", got)
	}
	// Held frames 1..15: the first repeat fires on the 15th.
	for i := 1; i <= 15; i++ {
		m, _ = m.Update(hold(input.Down))
	}
	if got := m.Navigator().Selection(); got != 2 {
		t.Errorf("after delay selection = %d, want 2", got)
	}
	for i := 0; i < 3; i++ {
		m, _ = m.Update(hold(input.Down))
	}
	if got := m.Navigator().Selection(); got != 3 {
		t.Errorf("after one rate period selection = %d, want 3", got)
	}

	m, _ = m.Update(press(input.Up))
	if got := m.Navigator().Selection(); got != 2 {
		t.Errorf("after up selection = %d, want 2", got)
	}
}

func TestBrowserPageSkip(t *testing.T) {
	fs := &fakeFS{dirs: map[string][]fsys.Entry{"/": nil}}
	for i := 0; i < 50; i++ {
		fs.dirs["/"] = append(fs.dirs["/"], fsys.Entry{Name: fmt.Sprintf("f%02d.txt", i)})
	}
	m := loadedBrowser(t, fs, "/")

	m, _ = m.Update(press(input.Right))
	if n := m.Navigator(); n.Selection() != 20 || n.ScrollTop() != 0 {
		t.Errorf("first skip = (%d,%d), want (20,0)", n.Selection(), n.ScrollTop())
	}
	m, _ = m.Update(FrameMsg{})
	m, _ = m.Update(press(input.Right))
	if n := m.Navigator(); n.Selection() != 40 || n.ScrollTop() != 20 {
		t.Errorf("second skip = (%d,%d), want (40,20)", n.Selection(), n.ScrollTop())
	}
	m, _ = m.Update(FrameMsg{})
	m, _ = m.Update(press(input.Left))
	if n := m.Navigator(); n.Selection() != 20 || n.ScrollTop() != 20 {
		t.Errorf("skip back = (%d,%d), want (20,20)", n.Selection(), n.ScrollTop())
	}
}

func TestBrowserSetDimensionsCapsHeight(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	m.SetDimensions(80, 100)
	if got := m.Navigator().Height(); got != 21 {
		t.Errorf("height = %d, want 21", got)
	}
	m.SetDimensions(80, 5)
	if got := m.Navigator().Height(); got != 5 {
		t.Errorf("height = %d, want 5", got)
	}
}

// ---------------------------------------------------------------------------
// Activation
// ---------------------------------------------------------------------------

func TestBrowserEnterDirectory(t *testing.T) {
	fs := sampleFS()
	m := loadedBrowser(t, fs, "/")

	m, cmd := m.Update(press(input.A))
	if m.Dir() != "/games" {
		t.Fatalf("Dir = %q, want /games", m.Dir())
	}
	if !m.Loading() {
		t.Error("should be loading")
	}
	m, _ = m.Update(run(cmd))
	if len(m.Entries()) != 1 || m.Entries()[0].Name != "save.ini" {
		t.Errorf("entries = %v", m.Entries())
	}
	if m.Navigator().Selection() != 0 || m.Navigator().ScrollTop() != 0 {
		t.Error("entering a directory should reset the navigator")
	}
}

func TestBrowserOpenFile(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	m, _ = m.Update(press(input.Down))
	m, _ = m.Update(FrameMsg{})
	_, cmd := m.Update(press(input.A))
	msg, ok := run(cmd).(OpenEditorMsg)
	if !ok {
		t.Fatal("expected OpenEditorMsg")
	}
	if msg.Path != "/a.txt" {
		t.Errorf("Path = %q, want /a.txt", msg.Path)
	}
}

func TestBrowserOpenFileInSubdir(t *testing.T) {
	fs := sampleFS()
	m := loadedBrowser(t, fs, "/games")
	_, cmd := m.Update(press(input.A))
	msg, ok := run(cmd).(OpenEditorMsg)
	if !ok || msg.Path != "/games/save.ini" {
		t.Errorf("got %#v, want OpenEditorMsg{/games/save.ini}", run(cmd))
	}
}

func TestBrowserActivateEmptyList(t *testing.T) {
	fs := &fakeFS{dirs: map[string][]fsys.Entry{"/": nil}}
	m := loadedBrowser(t, fs, "/")
	if _, cmd := m.Update(press(input.A)); cmd != nil {
		t.Errorf("A on empty list should do nothing, got %T", run(cmd))
	}
}

func TestBrowserGoUp(t *testing.T) {
	fs := sampleFS()
	m := loadedBrowser(t, fs, "/games")
	m, cmd := m.Update(press(input.B))
	if m.Dir() != "/" {
		t.Fatalf("Dir = %q, want /", m.Dir())
	}
	m, _ = m.Update(run(cmd))
	if len(m.Entries()) != 3 {
		t.Errorf("entries = %v", m.Entries())
	}
}

func TestBrowserGoUpAtRootReloads(t *testing.T) {
	fs := sampleFS()
	m := loadedBrowser(t, fs, "/")
	m, _ = m.Update(press(input.Down))
	m, _ = m.Update(FrameMsg{})

	before := len(fs.listed)
	m, cmd := m.Update(press(input.B))
	m, _ = m.Update(run(cmd))
	if m.Dir() != "/" {
		t.Errorf("Dir = %q, want /", m.Dir())
	}
	if len(fs.listed) != before+1 {
		t.Error("go up at root should re-read the directory")
	}
	if m.Navigator().Selection() != 0 {
		t.Error("go up at root should reset the selection")
	}
}

func TestBrowserStartQuits(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	_, cmd := m.Update(press(input.Start))
	if _, ok := run(cmd).(QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

// ---------------------------------------------------------------------------
// Live refresh
// ---------------------------------------------------------------------------

func TestBrowserDirChangedClampsSelection(t *testing.T) {
	fs := sampleFS()
	m := loadedBrowser(t, fs, "/")
	m, _ = m.Update(press(input.Down))
	m, _ = m.Update(FrameMsg{})
	m, _ = m.Update(press(input.Down))
	if m.Navigator().Selection() != 2 {
		t.Fatalf("selection = %d, want 2", m.Navigator().Selection())
	}

	fs.dirs["/"] = []fsys.Entry{{Name: "games", IsDir: true}, {Name: "a.txt"}}
	m, cmd := m.Update(DirChangedMsg{Dir: "/"})
	m, _ = m.Update(run(cmd))
	if got := m.Navigator().Selection(); got != 1 {
		t.Errorf("selection after shrink = %d, want 1", got)
	}
}

func TestBrowserDirChangedOtherDir(t *testing.T) {
	m := loadedBrowser(t, sampleFS(), "/")
	if _, cmd := m.Update(DirChangedMsg{Dir: "/games"}); cmd != nil {
		t.Error("change in another directory should be ignored")
	}
}
