package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFixOwnership_KeepsContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(p, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}
	FixOwnership(p)

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestFixOwnership_NonexistentPath(t *testing.T) {
	FixOwnership(filepath.Join(t.TempDir(), "missing", "debug.log"))
}

func TestInsideHome(t *testing.T) {
	home := filepath.FromSlash("/home/u")
	cases := map[string]bool{
		"/home/u":              false,
		"/home/u/.local":       true,
		"/home/u/.local/state": true,
		"/home":                false,
		"/home/u2":             false,
		"/tmp":                 false,
		"/home/u/..foo":        true,
	}
	for dir, want := range cases {
		if got := insideHome(home, filepath.FromSlash(dir)); got != want {
			t.Errorf("insideHome(%q) = %v, want %v", dir, got, want)
		}
	}
}
