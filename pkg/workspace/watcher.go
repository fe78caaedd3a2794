package workspace

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events produced by one atomic save.
const DefaultDebounce = 150 * time.Millisecond

// Event reports that a watched prompt file changed.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher wraps fsnotify to follow a small set of prompt files. fsnotify
// watches directories, so the watcher subscribes to each file's directory
// and drops events for any other name. A directory that does not exist yet
// is picked up when it is created inside its (existing) parent.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	targets map[string]string // file path -> directory
	watched map[string]bool   // directories subscribed with fsnotify
	pending map[string]bool   // target directories waiting to be created

	events    chan Event
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts a watcher. A zero debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		targets:  make(map[string]string),
		watched:  make(map[string]bool),
		pending:  make(map[string]bool),
		events:   make(chan Event, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the set of watched files. Empty paths are ignored, which
// lets callers pass the project path unconditionally.
func (w *Watcher) Watch(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	targets := make(map[string]string)
	wantDirs := make(map[string]bool)
	pending := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		targets[p] = dir
		if isDir(dir) {
			wantDirs[dir] = true
			continue
		}
		// Watch the parent so the directory's creation is noticed.
		if parent := filepath.Dir(dir); isDir(parent) {
			wantDirs[parent] = true
			pending[dir] = true
		}
	}

	for dir := range w.watched {
		if !wantDirs[dir] {
			_ = w.fsw.Remove(dir)
			delete(w.watched, dir)
		}
	}
	for dir := range wantDirs {
		if w.watched[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.watched[dir] = true
	}

	w.targets = targets
	w.pending = pending
	return nil
}

// Events delivers one event per burst of changes. The channel is closed
// when the watcher closes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors delivers fsnotify errors. Errors are dropped when nobody reads.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.events)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			pending = Event{Path: ev.Name, Op: ev.Op}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			select {
			case w.events <- pending:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether ev touches a target file. A created target
// directory is subscribed on the spot and counts as a change, since the
// file may already have been written into it.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending[ev.Name] && ev.Has(fsnotify.Create) && isDir(ev.Name) {
		if err := w.fsw.Add(ev.Name); err == nil {
			w.watched[ev.Name] = true
			delete(w.pending, ev.Name)
		}
		return true
	}

	dir, ok := w.targets[ev.Name]
	return ok && w.watched[dir]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
