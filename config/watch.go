package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
)

// Setter receives option updates. *gesture.Recognizer implements it.
type Setter interface {
	SetOption(name string, value any)
}

// Watch reloads the file at path whenever it is written or replaced and
// pushes every option through s. It returns once the watch is established;
// reloading continues until ctx is done. Reload failures are passed to onErr
// (if non-nil) and leave the current options in place.
func Watch(ctx context.Context, path string, s Setter, onErr func(error)) error {
	if _, err := FormatOf(path); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of
	// writing it in place, which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", path, err)
	}

	report := func(err error) {
		if onErr != nil {
			onErr(err)
		}
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				opts, err := Load(abs)
				if err != nil {
					report(err)
					continue
				}
				apply(opts, s)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				report(err)
			}
		}
	}()
	return nil
}

func apply(opts map[string]any, s Setter) {
	names := make([]string, 0, len(opts))
	for k := range opts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		s.SetOption(k, opts[k])
	}
}
