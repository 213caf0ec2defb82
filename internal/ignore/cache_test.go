package ignore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCacheGetParsesOnce(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.tmp\n")

	c := NewRuleCache(".gitignore", logger.Noop{})
	rf := c.Get(root)
	require.NotNil(t, rf)
	assert.Equal(t, 1, rf.Len())
	assert.EqualValues(t, 1, c.Parses())

	// Second access is a cache hit.
	assert.Same(t, rf, c.Get(root))
	assert.EqualValues(t, 1, c.Parses())
}

func TestCacheAbsentFileCachesNil(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	c := NewRuleCache(".gitignore", logger.Noop{})
	assert.Nil(t, c.Get(root))
	assert.Nil(t, c.Get(root))
	assert.EqualValues(t, 0, c.Parses())
}

func TestCacheInvalidateReloadsFromDisk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	writeFile(t, path, "*.tmp\n")

	c := NewRuleCache(".gitignore", logger.Noop{})
	require.Equal(t, MatchIgnore, c.Get(root).Evaluate("a.tmp", false))

	writeFile(t, path, "*.tmp\n!a.tmp\n")
	// Still the stale entry until invalidated.
	require.Equal(t, MatchIgnore, c.Get(root).Evaluate("a.tmp", false))

	c.Invalidate(root)
	assert.Equal(t, MatchNegate, c.Get(root).Evaluate("a.tmp", false))
	assert.EqualValues(t, 2, c.Parses())
}

func TestCacheInvalidateOtherDirUntouched(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.tmp\n")
	sub := filepath.Join(root, "sub")
	writeFile(t, filepath.Join(sub, ".gitignore"), "*.log\n")

	c := NewRuleCache(".gitignore", logger.Noop{})
	rootFile := c.Get(root)
	require.NotNil(t, rootFile)
	require.NotNil(t, c.Get(sub))
	require.EqualValues(t, 2, c.Parses())

	c.Invalidate(sub)
	assert.Same(t, rootFile, c.Get(root), "root entry must survive a sub invalidation")
	require.NotNil(t, c.Get(sub))
	assert.EqualValues(t, 3, c.Parses())
}

func TestCacheConcurrentMissesConverge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.tmp\n")

	c := NewRuleCache(".gitignore", logger.Noop{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rf := c.Get(root)
			assert.NotNil(t, rf)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, c.Parses(), "racing misses must converge on one parse")
}

func TestCacheUnreadableDirContributesNothing(t *testing.T) {
	t.Parallel()

	c := NewRuleCache(".gitignore", logger.Noop{})
	assert.Nil(t, c.Get(filepath.Join(t.TempDir(), "does", "not", "exist")))
}
