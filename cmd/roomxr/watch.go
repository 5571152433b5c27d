package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gekko3d/roomxr"
)

// watchConfig reloads path whenever it changes and delivers the newest
// valid config. The directory is watched so editors that replace the file
// are seen too. Invalid configs are logged and skipped.
func watchConfig(ctx context.Context, path string, log roomxr.Logger) (<-chan roomxr.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan roomxr.Config, 1)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("config watcher: %v", err)
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				cfg, err := roomxr.LoadConfig(abs)
				if err != nil {
					log.Warnf("ignoring config change: %v", err)
					continue
				}
				// Keep only the newest config.
				select {
				case <-out:
				default:
				}
				out <- cfg
			}
		}
	}()
	return out, nil
}
