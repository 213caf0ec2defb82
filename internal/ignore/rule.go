package ignore

import (
	"regexp"
	"strings"
)

// MatchResult is the outcome of evaluating a rule, a rule file, or the
// whole directory chain against one candidate path. It is tri-state
// because the hierarchical algorithm must distinguish "no opinion"
// from "explicitly un-ignored".
type MatchResult int

const (
	// NoMatch means no rule had an opinion about the path.
	NoMatch MatchResult = iota
	// MatchIgnore means an ignore rule matched the path.
	MatchIgnore
	// MatchNegate means the path was explicitly un-ignored.
	MatchNegate
)

func (r MatchResult) String() string {
	switch r {
	case MatchIgnore:
		return "ignore"
	case MatchNegate:
		return "negate"
	default:
		return "no-match"
	}
}

// Rule is one compiled rule-file line. Immutable after construction.
type Rule struct {
	original string
	// pattern is the core pattern: no leading "!", no leading "/",
	// no trailing "/".
	pattern string
	negated bool
	rooted  bool
	dirOnly bool
	// dirName is the bare final segment of a directory-only pattern,
	// kept to stop such patterns from swallowing a co-named file.
	dirName string
	// literal patterns carry no glob metacharacters and match by plain
	// string equality instead of running the strategy list.
	literal    bool
	strategies []matchStrategy
}

// Original returns the raw rule-file line the rule was compiled from.
func (r *Rule) Original() string { return r.original }

// Negated reports whether the rule un-ignores matching paths.
func (r *Rule) Negated() bool { return r.negated }

// Match evaluates the rule against a path relative to the rule file's
// directory.
func (r *Rule) Match(rel string, isDir bool) MatchResult {
	if rel == "" || !r.matches(rel, isDir) {
		return NoMatch
	}
	if r.negated {
		return MatchNegate
	}
	return MatchIgnore
}

func (r *Rule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir && pathBase(rel) == r.dirName {
		// A directory-only pattern must never swallow a file that
		// merely shares the directory's name.
		return false
	}
	if r.literal {
		if r.rooted || strings.Contains(r.pattern, "/") {
			return rel == r.pattern
		}
		return pathBase(rel) == r.pattern
	}
	for _, s := range r.strategies {
		if s.matches(rel, isDir) {
			return true
		}
	}
	return false
}

// matchStrategy is one way a compiled pattern can match a path.
// Strategies are tried in declaration order; the first hit wins.
type matchStrategy interface {
	matches(rel string, isDir bool) bool
}

// structuralStrategy matches the whole relative path against a regexp
// built from the glob pattern. It carries the canonical semantics.
type structuralStrategy struct {
	re *regexp.Regexp
}

func (s structuralStrategy) matches(rel string, _ bool) bool {
	return s.re.MatchString(rel)
}

// basenameStrategy matches only the final path segment. It is a
// pragmatic robustness net for rootless slash-free patterns, applied
// when the structural matcher does not fire; it is not part of
// canonical ignore-file semantics.
type basenameStrategy struct {
	re *regexp.Regexp
}

func (s basenameStrategy) matches(rel string, _ bool) bool {
	return s.re.MatchString(pathBase(rel))
}

// pathBase returns the final slash-separated path segment.
func pathBase(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
