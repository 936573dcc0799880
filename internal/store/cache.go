package store

import (
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thoreinstein/hsv/internal/document"
)

type cacheEntry struct {
	modTime time.Time
	size    int64
	cfg     *document.Configuration
}

// docCache holds parsed documents keyed by path. An entry is only served
// while the file's modification time and size are unchanged. A nil
// *docCache is a valid, always-empty cache.
type docCache struct {
	lru *lru.Cache[string, cacheEntry]
}

func newDocCache(size int) *docCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil
	}
	return &docCache{lru: c}
}

// get returns a copy of the cached document for path if info still matches.
func (c *docCache) get(path string, info fs.FileInfo) (*document.Configuration, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.lru.Get(path)
	if !ok || !e.modTime.Equal(info.ModTime()) || e.size != info.Size() {
		return nil, false
	}
	return e.cfg.Clone(), true
}

func (c *docCache) add(path string, info fs.FileInfo, cfg *document.Configuration) {
	if c == nil {
		return
	}
	c.lru.Add(path, cacheEntry{modTime: info.ModTime(), size: info.Size(), cfg: cfg.Clone()})
}

func (c *docCache) remove(path string) {
	if c == nil {
		return
	}
	c.lru.Remove(path)
}

func (c *docCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
