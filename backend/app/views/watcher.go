package views

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// settle is how long the watcher waits for an editor's burst of writes to end
// before parsing again.
const settle = 100 * time.Millisecond

// Watcher reloads a Renderer whenever a template in dir changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	renderer *Renderer
	log      zerolog.Logger
	reloaded chan struct{}

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func Watch(dir string, r *Renderer, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("views watcher: not a directory: " + abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(abs); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		renderer: r,
		log:      log,
		reloaded: make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processEvents()
	log.Info().Str("dir", abs).Msg("watching views")
	return w, nil
}

// Reloaded fires after each successful reload. Only the latest is kept.
func (w *Watcher) Reloaded() <-chan struct{} { return w.reloaded }

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(evt) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("views watcher error")
		}
	}
}

func (w *Watcher) reload() {
	if err := w.renderer.Reload(); err != nil {
		w.log.Error().Err(err).Msg("views reload failed, keeping previous templates")
		return
	}
	w.log.Info().Msg("views reloaded")
	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}

func relevant(evt fsnotify.Event) bool {
	if !strings.HasSuffix(evt.Name, ".html") {
		return false
	}
	return evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) Close() error {
	var closeErr error
	w.once.Do(func() {
		close(w.stop)
		if err := w.watcher.Close(); err != nil {
			closeErr = err
		}
	})
	w.wg.Wait()
	return closeErr
}
