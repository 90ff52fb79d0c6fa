package forecast

import (
	"fmt"
	"sync"
	"time"

	"github.com/vzahanych/zipweather/internal/models"
	"github.com/vzahanych/zipweather/internal/openweather"
)

// DefaultTTL is how long a fetched forecast is served from the cache.
const DefaultTTL = 30 * time.Minute

type CacheEntry struct {
	Forecast  *openweather.Response
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Cache is a time-bounded forecast store keyed by location identifier.
// Entries are replaced on write and never updated in place; concurrent writes
// for one key are last-writer-wins.
type Cache struct {
	entries map[string]*CacheEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// CacheKey is the requested "zip,COUNTRY" so the same postal code in two
// countries never shares an entry. Without a zip the coordinates are used.
func CacheKey(address models.Address, location models.Location) string {
	if address.Zip != "" {
		return address.QueryFormat()
	}
	if location.HasZip() {
		return location.Zip
	}
	return fmt.Sprintf("%.6f,%.6f", location.Lat, location.Lon)
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the stored forecast and true on a hit. Expired or absent keys are misses.
func (c *Cache) Get(key string) (*openweather.Response, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists || !c.now().Before(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Forecast, true
}

// Put stores value with an absolute expiry of ttl from now. A non-positive ttl uses the cache default.
func (c *Cache) Put(key string, value *openweather.Response, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &CacheEntry{
		Forecast:  value,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"cache_size": c.Len(),
		"cache_ttl":  c.ttl.String(),
	}
}
