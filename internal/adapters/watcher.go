package adapters

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"urdf2sem/internal/ports"
)

const defaultDebounce = 300 * time.Millisecond

// FSNotifyWatcher watches a single file. Editors often replace files
// instead of writing them, so the parent directory is watched and events
// are filtered by name.
type FSNotifyWatcher struct {
	Debounce time.Duration
}

func NewFSNotifyWatcher() FSNotifyWatcher {
	return FSNotifyWatcher{Debounce: defaultDebounce}
}

func (w FSNotifyWatcher) Watch(ctx context.Context, path string, onChange func(ctx context.Context) error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid watch path").
			WithCause(err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to watch directory").
			WithCause(err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	log.Debug().Str("path", target).Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", target).Msg("watch error")
		case <-timer.C:
			log.Debug().Str("path", target).Msg("change detected")
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

var _ ports.FileWatcherPort = FSNotifyWatcher{}
