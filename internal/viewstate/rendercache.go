package viewstate

import lru "github.com/hashicorp/golang-lru/v2"

// DefaultRenderCacheCapacity is used when config supplies no capacity.
const DefaultRenderCacheCapacity = 1000

// RenderKey identifies one cached render. All four fields feed into the
// rendered output; a hit requires all four to match, so stale lines from a
// previous width or wrap mode can never leak into a frame.
type RenderKey struct {
	EntryID  string
	Width    int
	Expanded bool
	Wrap     WrapMode
}

// RenderCache is a bounded LRU of rendered entry lines. Rendering an entry
// (markdown, wrapping, styling) is far more expensive than any layout query,
// and the visible set barely changes between frames, so recency eviction
// keeps the hot window resident.
//
// Cached slices are shared; callers must treat them as immutable.
type RenderCache struct {
	cache *lru.Cache[RenderKey, []string]
}

// NewRenderCache creates a cache holding at most capacity renders.
// Non-positive capacities fall back to DefaultRenderCacheCapacity.
func NewRenderCache(capacity int) *RenderCache {
	if capacity <= 0 {
		capacity = DefaultRenderCacheCapacity
	}
	cache, err := lru.New[RenderKey, []string](capacity)
	if err != nil {
		// lru.New only fails for non-positive sizes, excluded above.
		panic("viewstate: " + err.Error())
	}
	return &RenderCache{cache: cache}
}

// Get returns the cached lines for key and promotes it to most recently
// used. The second return is false on a miss.
func (rc *RenderCache) Get(key RenderKey) ([]string, bool) {
	return rc.cache.Get(key)
}

// Put stores lines under key, promoting it. Inserting a new key at capacity
// evicts the least recently used render.
func (rc *RenderCache) Put(key RenderKey, lines []string) {
	rc.cache.Add(key, lines)
}

// Contains reports whether key is cached without promoting it.
func (rc *RenderCache) Contains(key RenderKey) bool {
	return rc.cache.Contains(key)
}

// Len returns the number of cached renders.
func (rc *RenderCache) Len() int { return rc.cache.Len() }

// Clear drops every cached render. Called on theme changes, which invalidate
// all rendered output without changing any key field.
func (rc *RenderCache) Clear() { rc.cache.Purge() }
