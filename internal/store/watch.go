package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever its file is written or replaced. Events
// are debounced so an editor's burst of writes triggers one reload. The
// directory is watched rather than the file so rename-and-replace saves are
// seen. Watch returns once the watcher is running; it stops when ctx is done.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer w.Close()
		s.run(ctx, w, debounce)
	}()
	s.log.Info("watching catalog", "dir", dir, "debounce", debounce.String())
	return nil
}

// Wait blocks until the watcher goroutine has exited.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) run(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			// Reload logs its own failures and keeps the previous catalog.
			_, _ = s.Reload()

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Error("watcher error", "error", err)
		}
	}
}
