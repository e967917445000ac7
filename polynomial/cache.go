package polynomial

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tuneinsight/liphe/number"
)

// Stats reports the activity of a [Cache].
type Stats struct {
	// Hits counts lookups served from memory.
	Hits uint64
	// Misses counts lookups not found in memory.
	Misses uint64
	// Loads counts misses served by the second-level store.
	Loads uint64
	// Builds counts polynomials built by interpolation.
	Builds uint64
}

type entry struct {
	poly   *Polynomial
	digest [DigestSize]byte
}

// Cache memoizes indicator polynomials by [Key]. Entries are built once and never
// mutated afterwards: [Cache.Get] returns the shared instance, which callers must
// not modify. Lookup, build and insertion are serialized by a single mutex, so a
// key is built at most once per cache.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry
	store   Store
	verify  bool
	stats   Stats
}

// CacheOption configures a [Cache].
type CacheOption func(c *Cache)

// WithStore sets a second-level store, consulted on misses and fed with every
// polynomial the cache builds.
func WithStore(store Store) CacheOption {
	return func(c *Cache) {
		c.store = store
	}
}

// WithVerification enables the integrity check of the entries: the digest of a
// polynomial is recorded at insertion and checked again on every hit.
func WithVerification() CacheOption {
	return func(c *Cache) {
		c.verify = true
	}
}

// NewCache returns a new empty [Cache].
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{entries: map[Key]entry{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultCacheOnce sync.Once
	defaultCache     *Cache
)

// DefaultCache returns the process-wide cache.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}

// Get returns the indicator polynomial of key, building it on the first request.
func (c *Cache) Get(key Key) (*Polynomial, error) {
	return c.GetContext(context.Background(), key)
}

// GetContext is [Cache.Get] with a context bounding the calls to the second-level store.
func (c *Cache) GetContext(ctx context.Context, key Key) (poly *Polynomial, err error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {

		c.stats.Hits++

		if c.verify {
			var digest [DigestSize]byte
			if digest, err = e.poly.Digest(); err != nil {
				return nil, fmt.Errorf("cannot Get: %s: %w", key, err)
			}
			if digest != e.digest {
				return nil, fmt.Errorf("cannot Get: %s: cached polynomial was modified: %w", key, number.ErrInvariantViolation)
			}
		}

		return e.poly, nil
	}

	c.stats.Misses++

	var stored bool
	if c.store != nil {
		switch poly, err = c.store.Load(ctx, key); {
		case err == nil:
			if poly.Modulus != key.RingSize {
				return nil, fmt.Errorf("cannot Get: %s: stored polynomial has modulus %d: %w", key, poly.Modulus, number.ErrInvariantViolation)
			}
			c.stats.Loads++
			stored = true
		case errors.Is(err, ErrNotFound):
		default:
			return nil, fmt.Errorf("cannot Get: %s: %w", key, err)
		}
	}

	if !stored {

		if poly, err = NewIndicator(key); err != nil {
			return nil, err
		}

		c.stats.Builds++

		if c.store != nil {
			if err = c.store.Save(ctx, key, poly); err != nil {
				return nil, fmt.Errorf("cannot Get: %s: %w", key, err)
			}
		}
	}

	var digest [DigestSize]byte
	if digest, err = poly.Digest(); err != nil {
		return nil, fmt.Errorf("cannot Get: %s: %w", key, err)
	}

	c.entries[key] = entry{poly: poly, digest: digest}

	return poly, nil
}

// Contains returns true if key is present in memory.
func (c *Cache) Contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of polynomials held in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset drops all the in-memory entries and statistics. The store is left untouched.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[Key]entry{}
	c.stats = Stats{}
}
