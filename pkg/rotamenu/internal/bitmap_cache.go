package internal

import (
	"sync"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/bitmap"
)

const defaultMaxCacheSize = 5

// BitmapCache keeps the most recently used decoded bitmaps so rebuilding a
// page does not go back to storage for every image.
type BitmapCache struct {
	mu      sync.Mutex
	bitmaps map[string]*bitmap.Mono
	order   []string // tracks insertion order for LRU eviction
	maxSize int
}

func NewBitmapCache() *BitmapCache {
	return NewBitmapCacheWithSize(defaultMaxCacheSize)
}

func NewBitmapCacheWithSize(maxSize int) *BitmapCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &BitmapCache{
		bitmaps: make(map[string]*bitmap.Mono),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func (c *BitmapCache) Get(key string) *bitmap.Mono {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bm, exists := c.bitmaps[key]; exists {
		// Move to end (most recently used)
		c.moveToEnd(key)
		return bm
	}
	return nil
}

func (c *BitmapCache) Set(key string, bm *bitmap.Mono) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If key already exists, just update and move to end
	if _, exists := c.bitmaps[key]; exists {
		c.bitmaps[key] = bm
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.bitmaps[key] = bm
	c.order = append(c.order, key)
}

func (c *BitmapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *BitmapCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *BitmapCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.bitmaps, oldest)
}

func (c *BitmapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bitmaps = make(map[string]*bitmap.Mono)
	c.order = c.order[:0]
}
