package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyboardsamurai/srcexport/internal/ignore"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// collector records exported files safely across workers.
type collector struct {
	mu    sync.Mutex
	files map[string]string
}

func newCollector() *collector {
	return &collector{files: make(map[string]string)}
}

func (c *collector) walkFunc(rel string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[rel] = string(content)
	return nil
}

func (c *collector) paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.files))
	for p := range c.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func TestWalkRespectsRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "*.log\nbuild/\n",
		"main.go":          "package main\n",
		"debug.log":        "noise",
		"build/out.bin":    "binary",
		"src/.gitignore":   "!keep.log\n",
		"src/lib.go":       "package src\n",
		"src/keep.log":     "kept",
		"src/other.log":    "dropped",
		"docs/readme.md":   "# docs\n",
	})

	m, err := ignore.New(root)
	require.NoError(t, err)

	c := newCollector()
	skipped, err := Walk(context.Background(), root, m, c.walkFunc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		".gitignore",
		"docs/readme.md",
		"main.go",
		"src/.gitignore",
		"src/keep.log",
		"src/lib.go",
	}, c.paths())
	assert.Equal(t, "kept", c.files["src/keep.log"])

	byPath := make(map[string]SkippedItem, len(skipped))
	for _, it := range skipped {
		byPath[it.Path] = it
	}
	assert.Equal(t, ReasonIgnoredRule, byPath["debug.log"].Reason)
	assert.Equal(t, ReasonIgnoredRule, byPath["src/other.log"].Reason)
	require.Contains(t, byPath, "build")
	assert.True(t, byPath["build"].IsDir)
	// Pruned directories hide their children entirely.
	assert.NotContains(t, byPath, "build/out.bin")
}

func TestWalkConcurrentMatchesSequential(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{".gitignore": "vendor/\n"}
	for _, dir := range []string{"a", "b/c", "d/e/f"} {
		for _, name := range []string{"one.go", "two.go", "three.txt"} {
			files[dir+"/"+name] = "content of " + dir + "/" + name
		}
	}
	files["vendor/dep.go"] = "vendored"
	writeTree(t, root, files)

	m, err := ignore.New(root)
	require.NoError(t, err)

	seq := newCollector()
	_, err = Walk(context.Background(), root, m, seq.walkFunc)
	require.NoError(t, err)

	conc := newCollector()
	_, err = Walk(context.Background(), root, m, conc.walkFunc, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq.paths(), conc.paths())
	assert.NotContains(t, conc.files, "vendor/dep.go")
}

func TestWalkExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":   "go",
		"notes.md":  "md",
		"image.png": "png",
	})

	m, err := ignore.New(root)
	require.NoError(t, err)

	c := newCollector()
	skipped, err := Walk(context.Background(), root, m, c.walkFunc, WithExtensions([]string{".go", "md"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go", "notes.md"}, c.paths())
	require.Len(t, skipped, 1)
	assert.Equal(t, "image.png", skipped[0].Path)
	assert.Equal(t, ReasonFilteredExt, skipped[0].Reason)
}

func TestWalkSizeLimit(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"small.txt": "ok",
		"large.txt": strings.Repeat("x", 2048),
	})

	m, err := ignore.New(root)
	require.NoError(t, err)

	c := newCollector()
	skipped, err := Walk(context.Background(), root, m, c.walkFunc, WithMaxFileSize(1024))
	require.NoError(t, err)

	assert.Equal(t, []string{"small.txt"}, c.paths())
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonSizeLimit, skipped[0].Reason)
}

func TestWalkCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a", "b.txt": "b"})

	m, err := ignore.New(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newCollector()
	_, err = Walk(ctx, root, m, c.walkFunc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.paths())
}

func TestWalkFuncErrorTracked(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})

	m, err := ignore.New(root)
	require.NoError(t, err)

	skipped, err := Walk(context.Background(), root, m, func(string, []byte) error {
		return assert.AnError
	})
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "a.txt", skipped[0].Path)
}
