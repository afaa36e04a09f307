package biofmt_api

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a fixed set of files
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	paths     map[string]bool

	// Event channel, carries the absolute path of a changed file
	events chan string
	errors chan error

	// Control
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the given files
func NewWatcher(paths []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		paths:     map[string]bool{},
		events:    make(chan string, 100),
		errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		w.paths[absPath] = true
	}
	return w, nil
}

// Events returns the channel of changed files
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns the channel of errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Start begins watching. Files are watched through their directory so editors
// that replace files on save are followed.
func (w *Watcher) Start() error {
	dirs := map[string]bool{}
	for path := range w.paths {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop shuts the watcher down and closes its channels
func (w *Watcher) Stop() error {
	close(w.done)
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsWatcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.paths[filepath.Clean(event.Name)] {
				continue
			}
			select {
			case w.events <- filepath.Clean(event.Name):
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}
