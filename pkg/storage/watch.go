package storage

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounce window for bursts of writes (rename-based saves produce a
// create+rename pair per key).
const watchDebounce = 75 * time.Millisecond

// Watch reports keys changed by other processes. It emits the key name
// ("notes.json", "theme", ...) on the returned channel, debounced, until
// ctx is cancelled. Temp files from in-flight writes are ignored.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	changes := make(chan string, 8)

	go func() {
		defer close(changes)
		defer func() { _ = watcher.Close() }()

		pending := map[string]struct{}{}
		var flush <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
					continue
				}
				key := filepath.Base(ev.Name)
				if strings.HasSuffix(key, ".tmp") {
					continue
				}
				pending[key] = struct{}{}
				flush = time.After(watchDebounce)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("storage watch error")

			case <-flush:
				for key := range pending {
					select {
					case changes <- key:
					case <-ctx.Done():
						return
					}
				}
				pending = map[string]struct{}{}
				flush = nil
			}
		}
	}()

	s.log.WithFields(logrus.Fields{"dir": s.dir}).Debug("watching data dir")
	return changes, nil
}
