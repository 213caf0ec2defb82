// Package watch observes a directory tree and keeps the ignore
// matcher's rule cache fresh while the process runs.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/keyboardsamurai/srcexport/internal/ignore"
	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// Watcher forwards rule-file changes to the matcher.
type Watcher struct {
	fsw     *fsnotify.Watcher
	matcher *ignore.Matcher
	log     logger.Logger
	done    chan struct{}
}

// New starts watching every directory under the matcher's root. The
// returned Watcher runs until Close is called.
func New(matcher *ignore.Matcher, log logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		matcher: matcher,
		log:     log,
		done:    make(chan struct{}),
	}

	if err := w.addRecursive(matcher.Root()); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("watch: %q: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && p != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			w.log.Warn("watch: add %q: %v", p, err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	// New directories need their own watch before events from inside
	// them can arrive.
	if ev.Op.Has(fsnotify.Create) {
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			if err := w.addRecursive(ev.Name); err != nil {
				w.log.Warn("watch: add %q: %v", ev.Name, err)
			}
			return
		}
	}

	if filepath.Base(ev.Name) != w.matcher.RuleFileName() {
		return
	}

	op := ignore.OpChanged
	switch {
	case ev.Op.Has(fsnotify.Remove):
		op = ignore.OpDeleted
	case ev.Op.Has(fsnotify.Rename):
		op = ignore.OpRenamed
	}

	w.log.Debug("watch: rule file %s (%s)", ev.Name, ev.Op)
	w.matcher.Notify(ignore.ChangeEvent{Op: op, Path: ev.Name})
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
