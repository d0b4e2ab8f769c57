// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs a callback when files under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/bartekus/doclint/internal/scanner"
)

// DefaultDebounce is the quiet period before a burst of changes triggers a run.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called after each debounced burst with the changed paths, sorted.
// An error stops the watch.
type Handler func(ctx context.Context, changed []string) error

// Options configures Run.
type Options struct {
	Debounce time.Duration
	Logger   *zap.SugaredLogger
	// Ready, when set, is closed once every directory is being watched.
	Ready chan<- struct{}
}

// Run watches root recursively until ctx is done. New directories are added
// as they appear. Hidden and default-excluded directories are ignored.
func Run(ctx context.Context, root string, h Handler, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := addRecursive(w, root); err != nil {
		return err
	}
	if opts.Ready != nil {
		close(opts.Ready)
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignored(root, ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// Errors here mean the path vanished or is not a directory.
				_ = addRecursive(w, ev.Name)
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(opts.Debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)

		case <-timerC:
			timer, timerC = nil, nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)
			log.Debugw("change detected", "paths", changed)
			if err := h(ctx, changed); err != nil {
				return err
			}
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range scanner.DefaultExcludeDirs() {
		if name == d {
			return true
		}
	}
	return false
}

// ignored drops hidden and editor backup files and anything inside a skipped
// directory below root.
func ignored(root, p string) bool {
	base := filepath.Base(p)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return true
	}
	rel, err := filepath.Rel(root, filepath.Dir(p))
	if err != nil || rel == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipDir(seg) {
			return true
		}
	}
	return false
}
