package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pocketedit/internal/config"
)

var version = "dev"

// options are the launcher flags.
type options struct {
	configPath string
	root       string
	remote     string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Browse and edit small config files with a d-pad",
		Long:          "pocketedit lists a directory tree and edits .ini .cfg .txt .json and .xml files\non the local filesystem or on a host reached over SSH.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pocketedit/config.{toml,yaml,json})")
	f.StringVar(&opts.root, "root", "", "directory shown as /")
	f.StringVar(&opts.remote, "remote", "", "ssh config alias or user@host[:port] to edit over SSH")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")
	return cmd
}

// loadConfig applies the config file and then the flags.
func loadConfig(opts options) *config.Config {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		logrus.WithError(err).Warn("using default settings")
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if opts.remote != "" {
		cfg.Remote = config.ResolveRemote(opts.remote, config.LoadSSHConfig(), cfg.Remote)
	} else if cfg.Remote.Enabled() {
		cfg.Remote = config.ResolveRemote(cfg.Remote.Host, config.LoadSSHConfig(), cfg.Remote)
	}
	return cfg
}

// setupLogging sends logrus to the debug log file; the terminal belongs to
// the UI.
func setupLogging() (*os.File, error) {
	path := config.LogPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	config.FixOwnership(path)
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}

func setLevel(name string, debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.WithField("log_level", name).Warn("unknown log level")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func run(ctx context.Context, opts options) error {
	f, err := setupLogging()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	cfg := loadConfig(opts)
	setLevel(cfg.LogLevel, opts.debug)
	logrus.WithFields(logrus.Fields{"version": version, "log": f.Name()}).Info("starting")

	be, err := openBackend(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("backend unavailable")
		return err
	}
	defer func() {
		if err := be.Close(); err != nil {
			logrus.WithError(err).Warn("close backend")
		}
	}()

	p := tea.NewProgram(
		newAppModel(be.fs, be.label, cfg, be.dirWatcher()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logrus.Info("exiting")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
