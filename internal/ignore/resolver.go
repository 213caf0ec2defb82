package ignore

import (
	"path/filepath"
	"strings"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// resolver walks the ancestor-directory chain of a candidate path,
// bounded by the matcher root, and lets the closest rule file with an
// opinion decide.
type resolver struct {
	root  string
	cache *RuleCache
	log   logger.Logger
}

// decide evaluates rel (normalized, slash-separated, relative to the
// root) against each ancestor directory's rule file, closest directory
// first. The first directory returning other than NoMatch decides; a
// silent chain means the path is not excluded.
//
// Canonical git concatenates every applicable file root-to-leaf and
// takes the last matching rule overall. Stopping at the first deciding
// directory is a deliberate simplification; the two diverge only in
// rare multi-level override setups.
func (r *resolver) decide(rel string, isDir bool) MatchResult {
	for dir := parentDir(rel); ; dir = parentDir(dir) {
		if rf := r.cache.Get(r.absDir(dir)); rf != nil {
			candidate := rel
			if dir != "" {
				candidate = rel[len(dir)+1:]
			}
			if res := rf.Evaluate(candidate, isDir); res != NoMatch {
				r.log.Debug("ignore: %q decided %s by %s", rel, res, rf.Source())
				return res
			}
		}
		if dir == "" {
			return NoMatch
		}
	}
}

// absDir maps a root-relative directory path to the canonical absolute
// path used as the cache key.
func (r *resolver) absDir(dir string) string {
	if dir == "" {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(dir))
}

// parentDir returns the slash-separated parent of a relative path, with
// "" meaning the root.
func parentDir(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return ""
}
