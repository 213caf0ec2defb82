// Package walker traverses a directory tree and hands surviving files
// to a callback, consulting the ignore matcher for every entry.
package walker

import "sync"

// WalkFunc receives each exported file's root-relative path and
// content. Returning an error marks the file as skipped; it never
// stops the walk.
type WalkFunc func(relPath string, content []byte) error

// SkippedReason explains why an entry was not exported.
type SkippedReason string

const (
	ReasonIgnoredRule  SkippedReason = "ignored (rule)"
	ReasonFilteredExt  SkippedReason = "filtered (extension)"
	ReasonSizeLimit    SkippedReason = "skipped (size limit)"
	ReasonNotRegular   SkippedReason = "skipped (not a regular file)"
	ReasonPermission   SkippedReason = "skipped (permission)"
	ReasonWalkError    SkippedReason = "skipped (walk error)"
	ReasonReadError    SkippedReason = "skipped (read error)"
	ReasonInfoError    SkippedReason = "skipped (stat error)"
	ReasonPathError    SkippedReason = "skipped (path error)"
)

// SkippedItem records one entry that was left out of the export.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker collects skipped items from concurrent workers.
type SkippedTracker struct {
	mu    sync.Mutex
	items []SkippedItem
}

// NewSkippedTracker creates a tracker with the given initial capacity.
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{items: make([]SkippedItem, 0, capacity)}
}

// Track records one skipped entry.
func (t *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns everything tracked so far.
func (t *SkippedTracker) Items() []SkippedItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items
}
