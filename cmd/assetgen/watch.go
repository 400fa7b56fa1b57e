package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-assetgen/explorer"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const watchDebounce = 500 * time.Millisecond

// watch calls run each time the content of dir settles after a change, until
// ctx is canceled. Only events on supported images trigger a run.
func watch(ctx context.Context, dir string, run func(ctx context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}

	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "could not watch '%s'", dir)
	}

	slog.InfoContext(ctx, "watching images directory", slog.String("dir", dir))

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !explorer.IsSupported(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			slog.DebugContext(ctx, "images directory changed", slog.String("name", event.Name), slog.String("op", event.Op.String()))

			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.ErrorContext(ctx, "watcher error", slog.Any("error", errors.WithStack(err)))

		case <-timer.C:
			run(ctx)
		}
	}
}
