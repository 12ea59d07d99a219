package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileToken is a token source backed by a file that is re-read whenever
// the file changes. An emptied file yields an empty token.
type FileToken struct {
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu    sync.RWMutex
	token string
}

// NewFileToken reads path and starts watching it for changes.
func NewFileToken(path string) (*FileToken, error) {
	path = filepath.Clean(path)
	token, err := readToken(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched so that atomic replacements (rename over the
	// file, or a symlink swap for mounted secrets) are noticed too.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	f := &FileToken{path: path, watcher: watcher, done: make(chan struct{}), token: token}
	go f.watch()
	return f, nil
}

// Token returns the current token.
func (f *FileToken) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

// Close stops watching the file.
func (f *FileToken) Close() error {
	err := f.watcher.Close()
	<-f.done
	return err
}

func (f *FileToken) watch() {
	defer close(f.done)
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != f.path && !event.Has(fsnotify.Create) {
				continue
			}
			f.reload()
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("token file watch error", "path", f.path, "error", err)
		}
	}
}

func (f *FileToken) reload() {
	token, err := readToken(f.path)
	if err != nil {
		slog.Warn("token file reload failed, keeping previous token", "path", f.path, "error", err)
		return
	}

	f.mu.Lock()
	changed := f.token != token
	f.token = token
	f.mu.Unlock()

	if changed {
		slog.Info("access token reloaded", "path", f.path, "empty", token == "")
	}
}
