// Package watch regenerates artifacts when input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/constgen/internal/fileutil"
	"github.com/ternarybob/constgen/internal/logger"
)

// RunFunc performs one full generation.
type RunFunc func() error

// Watcher monitors input files and calls a RunFunc after changes settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	inputs   map[string]struct{}
	run      RunFunc
	debounce time.Duration
	logger   arbor.ILogger
}

// New creates a watcher for inputs. The parent directory of every input is
// watched so editors that replace files by rename are still noticed.
// Watching starts immediately; call Run to handle events and release
// resources. A nil log uses the global logger.
func New(inputs []string, run RunFunc, debounce time.Duration, log arbor.ILogger) (*Watcher, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs to watch")
	}

	if log == nil {
		log = logger.GetLogger()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		inputs:   make(map[string]struct{}, len(inputs)),
		run:      run,
		debounce: debounce,
		logger:   log,
	}

	dirs := make(map[string]struct{})
	for _, in := range inputs {
		abs, err := fileutil.Abs(in)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("resolve %s: %w", in, err)
		}
		w.inputs[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run handles file events until ctx is cancelled, then closes the watcher.
// Failed generations are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Input changed")
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			w.regenerate()
		}
	}
}

// relevant reports whether event modifies one of the inputs.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	abs, err := fileutil.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.inputs[abs]
	return ok
}

func (w *Watcher) regenerate() {
	start := time.Now()
	if err := w.run(); err != nil {
		w.logger.Error().Err(err).Msg("Regeneration failed")
		return
	}
	w.logger.Info().Str("elapsed", time.Since(start).Round(time.Millisecond).String()).Msg("Regenerated")
}
