// Package config loads launcher settings from an optional file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the config, state and log directories.
const AppName = "pocketedit"

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// Remote selects the SSH backend. An empty Host means the local filesystem.
type Remote struct {
	Host                  string   `toml:"host" yaml:"host" json:"host"`
	Port                  string   `toml:"port" yaml:"port" json:"port"`
	User                  string   `toml:"user" yaml:"user" json:"user"`
	IdentityFile          string   `toml:"identity_file" yaml:"identity_file" json:"identity_file"`
	KnownHosts            string   `toml:"known_hosts" yaml:"known_hosts" json:"known_hosts"`
	StrictHostKeyChecking bool     `toml:"strict_host_key_checking" yaml:"strict_host_key_checking" json:"strict_host_key_checking"`
	Timeout               Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
}

// Enabled reports whether a remote host is configured.
func (r Remote) Enabled() bool { return r.Host != "" }

// Config holds application configuration.
type Config struct {
	Root       string `toml:"root" yaml:"root" json:"root"`
	HoldFrames int    `toml:"hold_frames" yaml:"hold_frames" json:"hold_frames"`
	LogLevel   string `toml:"log_level" yaml:"log_level" json:"log_level"`
	Watch      bool   `toml:"watch" yaml:"watch" json:"watch"`
	Remote     Remote `toml:"remote" yaml:"remote" json:"remote"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Root:       ".",
		HoldFrames: 6,
		LogLevel:   "info",
		Watch:      true,
		Remote: Remote{
			Port:                  "22",
			KnownHosts:            filepath.Join(home, ".ssh", "known_hosts"),
			StrictHostKeyChecking: true,
			Timeout:               Duration(10 * time.Second),
		},
	}
}

// Dir returns the directory searched for config files.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName)
}

// DefaultPath returns the first config file present in Dir, or "".
func DefaultPath() string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml", "config.json"} {
		p := filepath.Join(Dir(), name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the config at path over the defaults. The format follows the
// extension. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return Default(), fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.HoldFrames < 1 {
		cfg.HoldFrames = Default().HoldFrames
	}
	return cfg, nil
}

// LogPath returns the path for the debug log file.
// When running from the project directory (go run / ./bin/pocketedit), logs go
// to .logs/debug.log. When installed, logs go to
// $XDG_STATE_HOME/pocketedit/debug.log.
func LogPath() string {
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		cwd, _ := os.Getwd()
		if strings.HasPrefix(exeDir, cwd) || strings.Contains(exeDir, "go-build") {
			dir := filepath.Join(cwd, ".logs")
			_ = os.MkdirAll(dir, 0o755)
			return filepath.Join(dir, "debug.log")
		}
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, AppName)
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "debug.log")
}
