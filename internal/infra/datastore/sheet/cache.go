package sheet

import (
	"sync"
	"time"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/util/clock"
)

// Cache holds the last parsed sheet together with its fetch time.
//
// The lock only guards the fields; callers that find the cache stale fetch
// without holding it, so two concurrent refreshes may both hit the source.
type Cache struct {
	ttl time.Duration

	mu        sync.RWMutex
	songs     []model.Song
	fetchedAt time.Time
}

func NewCache(ttl time.Duration) *Cache { return &Cache{ttl: ttl} }

// Fresh returns the cached songs when the cache is non-empty and younger than the TTL.
func (c *Cache) Fresh() ([]model.Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.songs) == 0 || clock.Now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.songs, true
}

// Replace swaps in a freshly fetched result set.
func (c *Cache) Replace(songs []model.Song) {
	c.mu.Lock()
	c.songs = songs
	c.fetchedAt = clock.Now()
	c.mu.Unlock()
}

// Invalidate forces the next read to refetch.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.songs = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
