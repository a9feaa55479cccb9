package server

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/langmatrix/internal/logfields"
)

const rebuildDebounce = 250 * time.Millisecond

// watch observes the content directory and triggers onChange after a quiet
// period. New subdirectories are added to the watch as they appear.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.contentDir); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// Best effort: the path may already be gone again.
				_ = addRecursive(watcher, event.Name)
			}
			if event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				slog.Debug("Content change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(rebuildDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-fire:
			s.rebuildAndNotify()
		}
	}
}

// addRecursive watches path and every directory below it. Non-directory
// paths are ignored.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // path vanished between event and walk
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != path {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
