package query

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 100 * time.Millisecond

// Watch reloads the rules when a JSON file of dir changes. It blocks until
// ctx is done.
func (h *Handler) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					if err := h.Reload(); err != nil {
						h.Log.Error().Err(err).Msg("reload rules")
						return
					}
					h.Log.Info().Str("dir", dir).Int("rules", len(h.Library())).Msg("rules reloaded")
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.Log.Warn().Err(err).Msg("rule watcher")
		}
	}
}
