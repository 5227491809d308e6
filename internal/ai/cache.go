package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// ResponseCache remembers provider responses within one session so that
// re-analyzing the same commit list, or regenerating a message for an
// unchanged staged diff, does not cost another provider call. Thread-safe
// for concurrent use.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cachedResponse
	maxSize int
	ttl     time.Duration
	enabled bool
	hits    int64
	misses  int64
}

type cachedResponse struct {
	text    string
	created time.Time
}

// NewResponseCache creates a new cache with the given configuration.
func NewResponseCache(cfg *Config) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cachedResponse),
		maxSize: cfg.CacheMaxSize,
		ttl:     cfg.CacheTTL,
		enabled: cfg.CacheEnabled,
	}
}

// cacheKey condenses the operation prefix and prompt into a fixed-size key.
// Prompts carry whole file contents, so the map must not retain them.
func cacheKey(prefix, input string) string {
	sum := sha256.Sum256([]byte(prefix + input))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached response if it exists and hasn't expired.
func (c *ResponseCache) Get(input string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	return c.lookup(cacheKey("", input))
}

// Set stores a response in the cache.
func (c *ResponseCache) Set(input, response string) {
	if !c.enabled {
		return
	}
	c.store(cacheKey("", input), response)
}

// GetOrGenerate checks the cache first and calls generator only on a miss.
// The prefix separates operation kinds that could share a prompt, such as
// "analyze:" versus "rewrite:". Returns the response, whether it came from
// the cache, and any generation error.
func (c *ResponseCache) GetOrGenerate(
	ctx context.Context,
	prefix string,
	input string,
	generator func(context.Context) (string, error),
) (string, bool, error) {
	if !c.enabled {
		response, err := generator(ctx)
		return response, false, err
	}

	key := cacheKey(prefix, input)
	if cached, ok := c.lookup(key); ok {
		c.count(&c.hits)
		return cached, true, nil
	}
	c.count(&c.misses)

	response, err := generator(ctx)
	if err != nil {
		// Failures are never cached; the next call gets a fresh attempt.
		return "", false, err
	}

	c.store(key, response)
	return response, false, nil
}

func (c *ResponseCache) lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.created) > c.ttl {
		return "", false
	}
	return entry.text, true
}

func (c *ResponseCache) store(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.makeRoom()
	}
	c.entries[key] = cachedResponse{text: response, created: time.Now()}
}

func (c *ResponseCache) count(counter *int64) {
	c.mu.Lock()
	*counter++
	c.mu.Unlock()
}

// makeRoom drops expired entries, then evicts the oldest survivors until a
// new entry fits. Must be called with mu held.
func (c *ResponseCache) makeRoom() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.created) > c.ttl {
			delete(c.entries, key)
		}
	}

	for len(c.entries) > 0 && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for key, entry := range c.entries {
			if oldestKey == "" || entry.created.Before(oldest) {
				oldestKey = key
				oldest = entry.created
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Stats returns cache statistics.
func (c *ResponseCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}

// Clear removes all entries and resets the counters.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedResponse)
	c.hits = 0
	c.misses = 0
}

// Size returns the current number of entries in the cache.
func (c *ResponseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
