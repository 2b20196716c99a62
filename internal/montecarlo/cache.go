package montecarlo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"clinch-calc/internal/model"
)

type cacheEntry struct {
	curve     *Curve
	expiresAt time.Time
}

// CurveCache keeps recent seeded simulation results. A seeded run with the
// same scenario, trials, volatility and worker count always yields the same
// Curve, so it is safe to serve it again. A nil *CurveCache is a valid,
// always-empty cache.
type CurveCache struct {
	mu         sync.RWMutex
	store      map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewCurveCache returns nil when ttl or maxEntries is not positive, which
// disables caching.
func NewCurveCache(ttl time.Duration, maxEntries int) *CurveCache {
	if ttl <= 0 || maxEntries <= 0 {
		return nil
	}
	return &CurveCache{
		store:      make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves a cached curve if available and not expired
func (c *CurveCache) Get(key string) (*Curve, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.curve, true
}

// Set stores a curve. When the cache is full, expired entries are dropped
// first and, if that frees nothing, the entry closest to expiry goes.
func (c *CurveCache) Set(key string, curve *Curve) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.store[key] = cacheEntry{curve: curve, expiresAt: now.Add(c.ttl)}
}

// Len reports how many entries are held, expired ones included.
func (c *CurveCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *CurveCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

func (c *CurveCache) evictLocked(now time.Time) {
	oldestKey := ""
	var oldest time.Time
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	if len(c.store) >= c.maxEntries && oldestKey != "" {
		delete(c.store, oldestKey)
	}
}

// CacheKey derives a cache key from everything that determines a seeded
// curve. Workers is part of it because each worker draws its own stream.
func CacheKey(s model.Scenario, opts Options) string {
	keyStr := fmt.Sprintf("%v:%v:%d:%v:%v:%v:%d:%d:%d",
		s.PointsLeader, s.PointsChaser, s.Remaining,
		s.PpgLeader, s.PpgChaser,
		opts.Volatility, opts.Trials, opts.Workers, opts.Seed,
	)

	// Hash the key to keep it reasonably sized
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
