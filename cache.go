// SPDX-License-Identifier: MIT

package gramfe

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// cacheKey identifies a matrix by the exact bit patterns of its parameters.
type cacheKey struct {
	dt, dh, eta uint64
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%016x/%016x/%016x", k.dt, k.dh, k.eta)
}

// Cache memoizes evolution matrices of one Evolver. Entries are evicted in
// insertion order once capacity is reached. Concurrent misses on the same
// key compute the matrix once. Results are copied into caller buffers, so
// no caller ever sees storage shared with the cache.
type Cache struct {
	ev       *Evolver
	capacity int

	mu      sync.RWMutex
	entries map[cacheKey][]complex128
	order   []cacheKey // FIFO; order[0] is evicted first

	group        singleflight.Group
	hits, misses atomic.Uint64
}

// NewCache returns a Cache over ev holding at most capacity matrices.
//
// Errors:
//   - ErrNilTables when ev is nil, ErrInvalidParameter when capacity < 1.
func NewCache(ev *Evolver, capacity int) (*Cache, error) {
	if ev == nil {
		return nil, fmt.Errorf("NewCache: %w", ErrNilTables)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("NewCache: capacity=%d: %w", capacity, ErrInvalidParameter)
	}

	return &Cache{
		ev:       ev,
		capacity: capacity,
		entries:  make(map[cacheKey][]complex128, capacity),
		order:    make([]cacheKey, 0, capacity),
	}, nil
}

// ComputeTimeEvolutionMatrix behaves like Evolver.ComputeTimeEvolutionMatrix,
// serving repeated (dt, dh, eta) from memory. Failed computations are not cached.
func (c *Cache) ComputeTimeEvolutionMatrix(out []complex128, dt, dh, eta float64) error {
	if want := c.ev.m * c.ev.n; len(out) != want {
		return fmt.Errorf("Cache.ComputeTimeEvolutionMatrix: len(out)=%d, want %d: %w", len(out), want, ErrOutputSize)
	}
	key := cacheKey{math.Float64bits(dt), math.Float64bits(dh), math.Float64bits(eta)}

	c.mu.RLock()
	buf, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		copy(out, buf)
		return nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		c.mu.RLock()
		buf, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return buf, nil
		}
		c.misses.Add(1)
		fresh := make([]complex128, len(out))
		if err := c.ev.ComputeTimeEvolutionMatrix(fresh, dt, dh, eta); err != nil {
			return nil, err
		}
		c.store(key, fresh)
		return fresh, nil
	})
	if err != nil {
		return err
	}
	copy(out, v.([]complex128))

	return nil
}

// store inserts buf under key, evicting the oldest entry when full.
func (c *Cache) store(key cacheKey, buf []complex128) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	if len(c.order) == c.capacity {
		delete(c.entries, c.order[0])
		c.order = append(c.order[:0], c.order[1:]...)
	}
	c.entries[key] = buf
	c.order = append(c.order, key)
}

// Len returns the number of cached matrices.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// Stats returns the hit and miss counts. A miss is one computed matrix.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
