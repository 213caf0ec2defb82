package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// New creates a Matcher rooted at rootDir. All configuration is passed
// at construction; the matcher never consults the environment.
func New(rootDir string, opts ...Option) (*Matcher, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: resolve root %q: %w", rootDir, err)
	}

	m := &Matcher{
		root:     filepath.Clean(abs),
		fileName: DefaultRuleFileName,
		log:      logger.Noop{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := validRuleFileName(m.fileName); err != nil {
		return nil, err
	}

	m.cache = NewRuleCache(m.fileName, m.log)
	m.resolver = &resolver{root: m.root, cache: m.cache, log: m.log}
	m.includes = newExplicitIncludes(m.includePaths, m.normalize)
	m.includePaths = nil
	return m, nil
}

// Root returns the absolute directory bounding the ancestor walk.
func (m *Matcher) Root() string { return m.root }

// RuleFileName returns the configured per-directory rule file name.
func (m *Matcher) RuleFileName() string { return m.fileName }

// Notify applies one externally-delivered rule-file change event,
// dropping the cache entries for the affected directories. Events for
// other file names are ignored. A move invalidates both the old and
// the new containing directory.
func (m *Matcher) Notify(ev ChangeEvent) {
	if m == nil {
		return
	}
	m.invalidateFor(ev.Path)
	m.invalidateFor(ev.OldPath)
}

// ClearCache drops every cached rule file, forcing a full re-read on
// the next query. Call it between independent export runs.
func (m *Matcher) ClearCache() {
	if m == nil {
		return
	}
	m.cache.InvalidateAll()
}

// CacheParses reports how many rule files have been parsed so far.
func (m *Matcher) CacheParses() int64 {
	return m.cache.Parses()
}

func (m *Matcher) invalidateFor(p string) {
	if p == "" || filepath.Base(p) != m.fileName {
		return
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.root, filepath.FromSlash(p))
	}
	dir := filepath.Dir(filepath.Clean(p))
	m.log.Debug("ignore: invalidating rules for %s", dir)
	m.cache.Invalidate(dir)
}

// normalize canonicalizes a query path to the slash-separated form
// relative to the matcher root. ok is false for the root itself and
// for paths outside the root; such paths are never subject to rules.
func (m *Matcher) normalize(p string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", false
	}
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(m.root, p)
		if err != nil {
			return "", false
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", false
	}
	return p, true
}

// validRuleFileName rejects names that cannot be a direct child entry
// of a directory.
func validRuleFileName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidRuleFileName, name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRuleFileName, name)
	}
	return nil
}
