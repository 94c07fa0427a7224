package fsys

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reports changes to the membership of one directory of a Local FS
// at a time.
type Watcher struct {
	local   *Local
	w       *fsnotify.Watcher
	changes chan string

	mu   sync.Mutex
	dir  string
	host string
	done chan struct{}
}

// NewWatcher starts watching nothing. Call Watch to pick a directory.
func NewWatcher(local *Local) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	wt := &Watcher{
		local:   local,
		w:       w,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go wt.loop()
	return wt, nil
}

// Watch switches the watched directory to dir (a virtual path).
func (wt *Watcher) Watch(dir string) error {
	host := wt.local.HostPath(dir)

	wt.mu.Lock()
	defer wt.mu.Unlock()
	if wt.host == host {
		return nil
	}
	if wt.host != "" {
		_ = wt.w.Remove(wt.host)
	}
	wt.dir, wt.host = "", ""
	if err := wt.w.Add(host); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	wt.dir, wt.host = dir, host
	return nil
}

// Changes delivers the virtual path of the watched directory after entries
// are created, removed or renamed in it. Bursts coalesce into one value.
func (wt *Watcher) Changes() <-chan string { return wt.changes }

// Close stops the watcher and closes Changes.
func (wt *Watcher) Close() error {
	err := wt.w.Close()
	<-wt.done
	return err
}

func (wt *Watcher) loop() {
	defer close(wt.done)
	defer close(wt.changes)
	log := logrus.WithField("component", "watcher")
	for {
		select {
		case ev, ok := <-wt.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			wt.mu.Lock()
			dir := wt.dir
			wt.mu.Unlock()
			if dir == "" {
				continue
			}
			log.WithField("event", ev.String()).Debug("directory changed")
			select {
			case wt.changes <- dir:
			default:
			}
		case err, ok := <-wt.w.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
