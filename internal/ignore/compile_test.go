package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, line string) *Rule {
	t.Helper()
	rule, ok, err := CompileLine(line)
	require.NoError(t, err)
	require.True(t, ok, "line %q must produce a rule", line)
	return rule
}

func TestCompileLineSkipsBlankAndComments(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   ", "\t", "# comment", "#", "#!important"} {
		rule, ok, err := CompileLine(line)
		require.NoError(t, err)
		assert.False(t, ok, "line %q must not produce a rule", line)
		assert.Nil(t, rule)
	}
}

func TestCompileLineFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		negated bool
		rooted  bool
		dirOnly bool
		pattern string
	}{
		{"*.log", false, false, false, "*.log"},
		{"!keep.log", true, false, false, "keep.log"},
		{"/rooted.txt", false, true, false, "rooted.txt"},
		{"build/", false, false, true, "build"},
		{"!/x/", true, true, true, "x"},
		{`\#literal`, false, false, false, "#literal"},
		{`\!literal`, false, false, false, "!literal"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rule := mustCompile(t, tt.line)
			assert.Equal(t, tt.negated, rule.negated)
			assert.Equal(t, tt.rooted, rule.rooted)
			assert.Equal(t, tt.dirOnly, rule.dirOnly)
			assert.Equal(t, tt.pattern, rule.pattern)
			assert.Equal(t, tt.line, rule.Original())
		})
	}
}

func TestCompileLineTrailingWhitespace(t *testing.T) {
	t.Parallel()

	rule := mustCompile(t, "name   ")
	assert.Equal(t, "name", rule.pattern)

	rule = mustCompile(t, `name\ `)
	assert.Equal(t, "name ", rule.pattern)
	assert.NotEqual(t, NoMatch, rule.Match("name ", false))
	assert.Equal(t, NoMatch, rule.Match("name", false))
}

func TestCompileLineLiteralClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, mustCompile(t, "README.md").literal)
	assert.True(t, mustCompile(t, "/rooted.txt").literal)
	assert.True(t, mustCompile(t, "doc/notes.txt").literal)
	assert.False(t, mustCompile(t, "*.log").literal)
	assert.False(t, mustCompile(t, "build/").literal, "dir-only patterns always run the matcher")
	assert.False(t, mustCompile(t, "a?c").literal)
}

func TestRuleMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		rel   string
		isDir bool
		want  bool
	}{
		// Depth-independent wildcard.
		{"*.log", "app.log", false, true},
		{"*.log", "sub/dir/app.log", false, true},
		{"*.log", "app.log.txt", false, false},
		{"*.log", "logs", true, false},

		// Literal basename matches at any depth.
		{"README.md", "README.md", false, true},
		{"README.md", "docs/README.md", false, true},
		{"README.md", "README.mdx", false, false},

		// Rooted patterns anchor to the rule file's directory.
		{"/only_at_root.txt", "only_at_root.txt", false, true},
		{"/only_at_root.txt", "nested/only_at_root.txt", false, false},
		{"/*.log", "app.log", false, true},
		{"/*.log", "sub/app.log", false, false},

		// Directory-only patterns take the directory and its contents,
		// never a co-named file.
		{"build/", "build", true, true},
		{"build/", "build", false, false},
		{"build/", "build/x", false, true},
		{"build/", "build/x/y.o", false, true},
		{"build/", "sub/build", true, true},
		{"build/", "sub/build", false, false},
		{"build/", "builder", true, false},

		// Slash-containing patterns are anchored.
		{"doc/*.txt", "doc/a.txt", false, true},
		{"doc/*.txt", "sub/doc/a.txt", false, false},
		{"doc/*.txt", "doc/deep/a.txt", false, false},

		// Double-star semantics.
		{"**/foo", "foo", false, true},
		{"**/foo", "a/b/foo", false, true},
		{"a/**/b", "a/b", false, true},
		{"a/**/b", "a/x/b", false, true},
		{"a/**/b", "a/x/y/b", false, true},
		{"a/**/b", "x/a/b", false, false},
		{"logs/**", "logs/a", false, true},
		{"logs/**", "logs/a/b", false, true},
		{"logs/**", "logs", true, false},

		// Single-character and class wildcards.
		{"a?.txt", "ab.txt", false, true},
		{"a?.txt", "a.txt", false, false},
		{"file[0-9].go", "file1.go", false, true},
		{"file[0-9].go", "fileA.go", false, false},
		{"file[!0-9].go", "fileA.go", false, true},
		{"file[!0-9].go", "file1.go", false, false},

		// Escapes.
		{`foo\*bar`, "foo*bar", false, true},
		{`foo\*bar`, "fooXbar", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.line+"/"+tt.rel, func(t *testing.T) {
			rule := mustCompile(t, tt.line)
			got := rule.Match(tt.rel, tt.isDir) != NoMatch
			assert.Equal(t, tt.want, got, "pattern %q vs %q (dir=%v)", tt.line, tt.rel, tt.isDir)
		})
	}
}

func TestNegatedRuleResult(t *testing.T) {
	t.Parallel()

	rule := mustCompile(t, "!keep.log")
	assert.Equal(t, MatchNegate, rule.Match("keep.log", false))
	assert.Equal(t, MatchNegate, rule.Match("deep/keep.log", false))
	assert.Equal(t, NoMatch, rule.Match("other.log", false))

	rule = mustCompile(t, "*.log")
	assert.Equal(t, MatchIgnore, rule.Match("app.log", false))
}

func TestFilenameFallbackStrategyOrder(t *testing.T) {
	t.Parallel()

	// Rootless slash-free patterns carry the structural matcher plus
	// the filename-only fallback; anchored patterns carry only the
	// structural one.
	assert.Len(t, mustCompile(t, "*.log").strategies, 2)
	assert.Len(t, mustCompile(t, "/x*.log").strategies, 1)
	assert.Len(t, mustCompile(t, "doc/*.txt").strategies, 1)
}
