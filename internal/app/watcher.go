package app

import (
	"fmt"
	"log"
	"path/filepath"

	"shadowscene/internal/graphics"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports programs whose source files changed on disk.
// It never touches GPU state; the render thread drains Changes.
type ShaderWatcher struct {
	Changes chan graphics.ProgramName

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchShaders starts watching dir for shader edits
func WatchShaders(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("shader watcher %s: %w", dir, err)
	}
	sw := &ShaderWatcher{
		Changes: make(chan graphics.ProgramName, len(graphics.Programs)),
		watcher: w,
		done:    make(chan struct{}),
	}
	go sw.loop()
	log.Printf("watching %s for shader changes", dir)
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, ok := graphics.ByPath(filepath.Base(event.Name))
			if !ok {
				continue
			}
			select {
			case sw.Changes <- name:
			default:
				// a reload is already queued; the render thread will pick up
				// the latest source anyway
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Close stops the watcher goroutine
func (sw *ShaderWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}
