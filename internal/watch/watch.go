// Package watch notifies when the combat log state file changes on disk,
// e.g. because `hollowlog hit` ran in another terminal.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/fakeyudi/hollowlog/internal/logger"
)

// FileWatcher watches a single file. The parent directory is watched because
// the state file is replaced by rename on every save.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	name    string
	changes chan struct{}
	log     logger.Logger
}

// NewFileWatcher starts watching path.
func NewFileWatcher(path string, log logger.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	fw := &FileWatcher{
		watcher: w,
		name:    filepath.Base(path),
		changes: make(chan struct{}, 1),
		log:     log,
	}
	go fw.processEvents()
	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.changes)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fw.name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce bursts; one pending notification is enough.
			select {
			case fw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("state file watch error", logger.Error(err))
		}
	}
}

// Changes delivers a value after the file changes. It is closed by Close.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
