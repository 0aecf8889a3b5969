// Package cache holds encoded API responses in memory. Entries are keyed by
// the resource they render and stamped with the dataset version they were
// built from, so a rebuild can drop one collection's responses or every
// response older than the current dataset.
package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/albapepper/matchday-data/internal/config"
)

// Resource is the kind of document a cached response renders.
type Resource string

const (
	MatchList Resource = "matches"
	Match     Resource = "match"
	Player    Resource = "player"
)

// Collection returns the stored collection the resource is read from.
func (r Resource) Collection() string {
	if r == Player {
		return config.PlayersTable
	}
	return config.MatchesTable
}

// TTL returns how long a response stays fresh. The listing is short lived
// because it is the page most likely to be polled during a rebuild.
func (r Resource) TTL() time.Duration {
	if r == MatchList {
		return 10 * time.Minute
	}
	return time.Hour
}

// Key identifies one cached response.
type Key struct {
	Resource Resource
	ID       string
}

func MatchListKey() Key { return Key{Resource: MatchList} }
func MatchKey(id string) Key { return Key{Resource: Match, ID: id} }
func PlayerKey(id string) Key { return Key{Resource: Player, ID: id} }

func (k Key) String() string {
	if k.ID == "" {
		return string(k.Resource)
	}
	return string(k.Resource) + ":" + k.ID
}

type entry struct {
	data      []byte
	etag      string
	version   string
	expiresAt time.Time
}

// Stats is the /health/cache payload.
type Stats struct {
	Enabled       bool             `json:"enabled"`
	Version       string           `json:"dataset_version"`
	Entries       map[Resource]int `json:"entries"`
	Invalidations int              `json:"invalidations"`
}

// Cache is a thread-safe response cache.
type Cache struct {
	mu            sync.RWMutex
	entries       map[Key]entry
	enabled       bool
	version       string
	invalidations int
}

// New creates a cache. A disabled cache stores nothing but still computes
// ETags.
func New(enabled bool) *Cache {
	c := &Cache{
		entries: make(map[Key]entry),
		enabled: enabled,
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Get returns a fresh response built from the current dataset version.
func (c *Cache) Get(k Key) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[k]
	if !exists || e.version != c.version || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores a response for the resource's TTL and returns its ETag.
func (c *Cache) Set(k Key, data []byte) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = entry{
		data:      data,
		etag:      etag,
		version:   c.version,
		expiresAt: time.Now().Add(k.Resource.TTL()),
	}
	return etag
}

// Invalidate drops the responses read from collection. An empty collection
// drops everything. Returns the number of entries removed.
func (c *Cache) Invalidate(collection string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k := range c.entries {
		if collection == "" || k.Resource.Collection() == collection {
			delete(c.entries, k)
			removed++
		}
	}
	c.invalidations++
	return removed
}

// Advance moves the cache to a new dataset version and drops the entries
// built from any other version. Returns the number removed; advancing to
// the current version is a no-op.
func (c *Cache) Advance(version string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version == c.version {
		return 0
	}
	c.version = version
	removed := 0
	for k, e := range c.entries {
		if e.version != version {
			delete(c.entries, k)
			removed++
		}
	}
	c.invalidations++
	return removed
}

// Stats counts live entries per resource.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Stats{
		Enabled:       c.enabled,
		Version:       c.version,
		Entries:       make(map[Resource]int),
		Invalidations: c.invalidations,
	}
	for k := range c.entries {
		s.Entries[k.Resource]++
	}
	return s
}

func (c *Cache) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evict()
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// ComputeETag generates a weak ETag from response data.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch reports whether an If-None-Match header names etag. The
// header may list several tags; comparison is weak, so W/ prefixes are
// ignored on both sides.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if strings.TrimSpace(ifNoneMatch) == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate != "" && candidate == want {
			return true
		}
	}
	return false
}
