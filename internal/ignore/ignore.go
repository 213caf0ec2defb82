// Package ignore decides whether paths inside a file tree must be
// excluded from a recursive export, using per-directory rule files with
// gitignore-compatible pattern semantics: negation, rooted and
// depth-independent patterns, directory-only patterns, glob wildcards
// and last-matching-rule-wins precedence, composed hierarchically from
// the tree root down to the target.
//
// Rule files are read lazily and cached per directory; callers deliver
// change notifications to keep the cache fresh. One unreadable or
// malformed rule file never aborts an export: it simply contributes no
// rules.
package ignore

// DefaultRuleFileName is the per-directory rule file consulted when no
// other name is configured.
const DefaultRuleFileName = ".gitignore"

// IsIgnored is a convenience wrapper that tolerates a nil matcher.
func IsIgnored(m *Matcher, path string, isDir bool) bool {
	if m == nil {
		return false
	}
	return m.ShouldIgnore(path, isDir)
}
