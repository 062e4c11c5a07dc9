package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"autocorrect/internal/trace"
)

// DefaultDebounce is the quiet period before a changed config is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a Provider from a config file whenever the file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	provider  *Provider
	path      string
	debounce  time.Duration
	tracer    trace.Tracer
	reloaded  chan *Snapshot
	done      chan struct{}
}

// NewWatcher creates a watcher for path. Start must be called to begin.
func NewWatcher(p *Provider, path string, debounce time.Duration, tracer trace.Tracer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Watcher{
		fsWatcher: fsw,
		provider:  p,
		path:      filepath.Clean(path),
		debounce:  debounce,
		tracer:    tracer,
		reloaded:  make(chan *Snapshot, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directory containing the config file (editors replace
// files by rename, which a watch on the file itself would miss). The returned
// channel receives every successfully loaded snapshot.
func (w *Watcher) Start() (<-chan *Snapshot, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	return w.reloaded, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
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
			pending = true

		case <-timerC:
			timerC = nil
			if pending {
				pending = false
				w.reload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			trace.Error(w.tracer, "config.watch", err, 0)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	span := trace.Begin(w.tracer, trace.ScopePass, "config.reload", 0)
	s, err := w.provider.LoadFile(w.path)
	if err != nil {
		// старый снапшот остаётся в силе
		trace.Error(w.tracer, "config.reload", err, span.ID())
		span.End("kept previous")
		return
	}
	span.End(s.Source())
	select {
	case w.reloaded <- s:
	default:
		// читатель отстал: заменяем непрочитанный снапшот свежим
		select {
		case <-w.reloaded:
		default:
		}
		select {
		case w.reloaded <- s:
		default:
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
