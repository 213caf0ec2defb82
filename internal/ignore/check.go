package ignore

// ShouldIgnore reports whether the entry must be excluded from an
// export. It is total: any input yields a plain boolean, and rule-file
// read failures degrade to "not ignored" rather than surfacing.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	return m.Evaluate(relPath, isDir) == MatchIgnore
}

// Evaluate returns the detailed verdict for one entry. MatchNegate
// distinguishes "explicitly un-ignored" (a "!" rule or the explicit
// include list) from plain NoMatch for callers needing diagnostics;
// everyone else should use ShouldIgnore.
func (m *Matcher) Evaluate(relPath string, isDir bool) MatchResult {
	if m == nil || m.disabled {
		return NoMatch
	}

	rel, ok := m.normalize(relPath)
	if !ok {
		return NoMatch
	}

	if m.includes.contains(rel, isDir) {
		m.log.Debug("ignore: %q kept by explicit include", rel)
		return MatchNegate
	}

	return m.resolver.decide(rel, isDir)
}
