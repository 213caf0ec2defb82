package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keyboardsamurai/srcexport/internal/ignore"
)

// walkStats tracks traversal counters shared across workers.
type walkStats struct {
	files       atomic.Int64
	exported    atomic.Int64
	skipped     atomic.Int64
	dirs        atomic.Int64
	skippedDirs atomic.Int64
}

func (s *walkStats) snapshot(current string) Progress {
	return Progress{
		Files:       s.files.Load(),
		Exported:    s.exported.Load(),
		Skipped:     s.skipped.Load(),
		Dirs:        s.dirs.Load(),
		SkippedDirs: s.skippedDirs.Load(),
		Current:     current,
	}
}

// workItem is one file queued for processing.
type workItem struct {
	path string
	rel  string
}

// Walk traverses the tree rooted at rootDir, consults the matcher for
// every entry, and hands surviving files to fn. Ignored directories are
// pruned whole. It returns the skipped items and any critical
// traversal error; per-file failures are tracked, not returned.
func Walk(ctx context.Context, rootDir string, matcher *ignore.Matcher, fn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	start := time.Now()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root %q: %w", rootDir, err)
	}

	tracker := NewSkippedTracker(64)
	var stats walkStats

	if o.Progress != nil {
		progressCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			ticker := time.NewTicker(300 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-progressCtx.Done():
					return
				case <-ticker.C:
					o.Progress(stats.snapshot(""))
				}
			}
		}()
	}

	// decide classifies one entry: prune, skip, or queue for export.
	decide := func(p string, d fs.DirEntry, walkErr error) (rel string, action error, process bool) {
		if err := ctx.Err(); err != nil {
			return "", err, false
		}

		isDir := d != nil && d.IsDir()
		if isDir {
			stats.dirs.Add(1)
		} else {
			stats.files.Add(1)
		}

		relOS, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			o.Logger.Error("walker: relative path for %q: %v", p, relErr)
			tracker.Track(p, ReasonPathError, isDir)
			return "", nil, false
		}
		rel = filepath.ToSlash(relOS)

		if walkErr != nil {
			reason := ReasonWalkError
			if os.IsPermission(walkErr) {
				reason = ReasonPermission
			}
			o.Logger.Warn("walker: %q: %v", rel, walkErr)
			tracker.Track(rel, reason, isDir)
			if isDir {
				stats.skippedDirs.Add(1)
				return "", filepath.SkipDir, false
			}
			stats.skipped.Add(1)
			return "", nil, false
		}

		if p == absRoot || rel == "." {
			return "", nil, false
		}

		if matcher.ShouldIgnore(rel, isDir) {
			o.Logger.Debug("walker: %q excluded by rules", rel)
			tracker.Track(rel, ReasonIgnoredRule, isDir)
			if isDir {
				stats.skippedDirs.Add(1)
				return "", filepath.SkipDir, false
			}
			stats.skipped.Add(1)
			return "", nil, false
		}

		if isDir {
			return "", nil, false
		}

		if len(o.Extensions) > 0 {
			ext := strings.ToLower(strings.TrimPrefix(path.Ext(rel), "."))
			if _, ok := o.Extensions[ext]; !ok {
				tracker.Track(rel, ReasonFilteredExt, false)
				stats.skipped.Add(1)
				return "", nil, false
			}
		}

		return rel, nil, true
	}

	if o.Workers > 1 {
		err = walkConcurrent(ctx, absRoot, o, fn, tracker, &stats, decide)
	} else {
		err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
			rel, action, process := decide(p, d, walkErr)
			if action != nil {
				return action
			}
			if process {
				processFile(p, rel, o, fn, tracker, &stats)
			}
			return nil
		})
	}

	o.Logger.Debug("walker: finished in %s (%d exported, %d skipped)",
		time.Since(start).Round(time.Millisecond), stats.exported.Load(), stats.skipped.Load())

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return tracker.Items(), fmt.Errorf("walker: %w", err)
	}
	return tracker.Items(), err
}

// walkConcurrent runs one producer walking the tree and a pool of
// workers reading files. The first failing goroutine cancels the rest.
func walkConcurrent(
	ctx context.Context,
	absRoot string,
	o Options,
	fn WalkFunc,
	tracker *SkippedTracker,
	stats *walkStats,
	decide func(string, fs.DirEntry, error) (string, error, bool),
) error {
	g, gctx := errgroup.WithContext(ctx)
	items := make(chan workItem, o.Workers*2)

	g.Go(func() error {
		defer close(items)
		return filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
			rel, action, process := decide(p, d, walkErr)
			if action != nil {
				return action
			}
			if !process {
				return nil
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case items <- workItem{path: p, rel: rel}:
				return nil
			}
		})
	})

	for i := 0; i < o.Workers; i++ {
		g.Go(func() error {
			for it := range items {
				if err := gctx.Err(); err != nil {
					return err
				}
				processFile(it.path, it.rel, o, fn, tracker, stats)
			}
			return nil
		})
	}

	return g.Wait()
}
