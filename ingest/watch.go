package ingest

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports audio files created in a drop folder.
type Watcher struct {
	fsw   *fsnotify.Watcher
	paths chan string
	errs  chan error
	done  chan struct{}
}

func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:   fsw,
		paths: make(chan string),
		errs:  make(chan error),
		done:  make(chan struct{}),
	}
	go w.run()
	log.Println("watching", dir, "for dropped files")
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !IsAudio(ev.Name) {
				continue
			}
			select {
			case w.paths <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.done:
				return
			}
		}
	}
}

// Paths delivers the path of every audio file created in the folder.
func (w *Watcher) Paths() <-chan string {
	return w.paths
}

func (w *Watcher) Errors() <-chan error {
	return w.errs
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
