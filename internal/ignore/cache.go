package ignore

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// RuleCache lazily maps canonical directory paths to the rule file
// found directly inside each directory. A directory without a rule
// file caches nil, so repeated queries skip the disk entirely until
// the entry is invalidated.
type RuleCache struct {
	fileName string
	log      logger.Logger

	mu      sync.Mutex
	entries map[string]*cacheEntry

	parses atomic.Int64
}

// cacheEntry holds one cached rule file, or an in-flight load other
// goroutines wait on.
type cacheEntry struct {
	file    *RuleFile
	loading bool
	wg      sync.WaitGroup
}

// NewRuleCache creates a cache for rule files named fileName.
func NewRuleCache(fileName string, log logger.Logger) *RuleCache {
	return &RuleCache{
		fileName: fileName,
		log:      log,
		entries:  make(map[string]*cacheEntry),
	}
}

// Get returns the rule file for the directory at the absolute path dir,
// loading and caching it on first access. Concurrent misses for the
// same directory converge on a single parse; losers wait for the
// winner. nil means the directory contributes no rules.
func (c *RuleCache) Get(dir string) *RuleFile {
	c.mu.Lock()
	if e, ok := c.entries[dir]; ok {
		loading := e.loading
		c.mu.Unlock()
		if loading {
			e.wg.Wait()
		}
		return e.file
	}

	e := &cacheEntry{loading: true}
	e.wg.Add(1)
	c.entries[dir] = e
	c.mu.Unlock()

	file := c.load(dir)

	c.mu.Lock()
	e.file = file
	e.loading = false
	c.mu.Unlock()
	e.wg.Done()
	return file
}

// load reads and parses one directory's rule file. Missing or
// unreadable files degrade to nil so one bad rule file never aborts an
// export.
func (c *RuleCache) load(dir string) *RuleFile {
	path := filepath.Join(dir, c.fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("ignore: cannot read %s: %v", path, err)
		}
		return nil
	}
	c.parses.Add(1)
	return ParseRuleFile(path, bytes.NewReader(data), c.log)
}

// Invalidate drops the cached entry for one directory. The next Get
// re-reads the rule file from disk.
func (c *RuleCache) Invalidate(dir string) {
	c.mu.Lock()
	delete(c.entries, dir)
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry, forcing a full rebuild.
func (c *RuleCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Parses returns how many rule files have been parsed since creation.
// Diagnostic; cache hits do not increment it.
func (c *RuleCache) Parses() int64 {
	return c.parses.Load()
}
