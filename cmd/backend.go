package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"pocketedit/internal/config"
	"pocketedit/internal/fsys"
	"pocketedit/internal/remote"
	"pocketedit/internal/ui"
)

// backend is the filesystem the program edits, plus what must be closed on
// exit.
type backend struct {
	fs      fsys.FS
	label   string
	watcher *fsys.Watcher
	closers []io.Closer
}

// Close releases the connection, agent socket and watcher.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dirWatcher returns the watcher as the app sees it, or nil.
func (b *backend) dirWatcher() dirWatcher {
	if b.watcher == nil {
		return nil
	}
	return b.watcher
}

// openBackend picks the local filesystem or an SSH host according to cfg.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.Remote.Enabled() {
		return openRemote(ctx, cfg.Remote, cfg.Root)
	}
	return openLocal(cfg.Root, cfg.Watch)
}

func openLocal(root string, watch bool) (*backend, error) {
	local, err := fsys.NewLocal(root)
	if err != nil {
		return nil, err
	}
	b := &backend{fs: local, label: ui.BackendLabel("", "", local.Root)}
	if !watch {
		return b, nil
	}
	w, err := fsys.NewWatcher(local)
	if err != nil {
		logrus.WithError(err).Warn("live refresh disabled")
		return b, nil
	}
	b.watcher = w
	b.closers = append(b.closers, w)
	return b, nil
}

func openRemote(ctx context.Context, r config.Remote, root string) (*backend, error) {
	log := logrus.WithFields(logrus.Fields{"host": r.Host, "port": r.Port, "user": r.User})

	hostKeys, err := remote.HostKeyCallback(r.KnownHosts, r.StrictHostKeyChecking)
	if err != nil {
		return nil, err
	}
	b := &backend{}
	auth, closers := authMethods(r)
	b.closers = append(b.closers, closers...)
	if len(auth) == 0 {
		_ = b.Close()
		return nil, fmt.Errorf("no usable key for %s: set identity_file or start an ssh agent", r.Host)
	}

	log.Info("connecting")
	client, err := remote.Dial(ctx, remote.Options{
		Host:            r.Host,
		Port:            r.Port,
		User:            r.User,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         time.Duration(r.Timeout),
	})
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.closers = append(b.closers, client)
	log.WithField("address", client.Address()).Info("connected")

	if root == "." {
		root = ""
	}
	rfs := remote.NewFS(client, root)
	b.fs = rfs
	b.label = ui.BackendLabel(r.User, r.Host, rfs.Root)
	return b, nil
}

// authMethods collects public-key methods: the configured identity first, then
// the agent, then the conventional keys.
func authMethods(r config.Remote) ([]ssh.AuthMethod, []io.Closer) {
	log := logrus.WithField("component", "auth")
	var methods []ssh.AuthMethod
	var closers []io.Closer

	if r.IdentityFile != "" {
		if am, err := remote.PubKeyAuth(r.IdentityFile); err == nil {
			methods = append(methods, am)
		} else {
			log.WithError(err).Warn("identity file unusable")
		}
	}
	if am, c, err := remote.AgentAuth(); err == nil {
		methods = append(methods, am)
		closers = append(closers, c)
	} else {
		log.WithError(err).Debug("no agent")
	}
	home, _ := os.UserHomeDir()
	for _, kp := range remote.DefaultKeyPaths(home) {
		if kp == r.IdentityFile {
			continue
		}
		if am, err := remote.PubKeyAuth(kp); err == nil {
			methods = append(methods, am)
		}
	}
	return methods, closers
}
