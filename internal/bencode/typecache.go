package bencode

import (
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TypeCache is a concurrency-safe map from reflect.Type to an arbitrary,
// once-computed plan value (the struct driver in pkg/bencode stores its
// field-resolution plans here). It is the same shape as the teacher
// repository's pkg/syncmap.Map[K, V] generic concurrent map, repurposed from
// caching BitTorrent session state to caching reflection plans, and paired
// with a singleflight.Group so that concurrent first use of the same type
// builds the plan exactly once rather than once per racing goroutine.
type TypeCache[V any] struct {
	mu    sync.RWMutex
	plans map[reflect.Type]V
	build singleflight.Group
}

// NewTypeCache returns an empty TypeCache.
func NewTypeCache[V any]() *TypeCache[V] {
	return &TypeCache[V]{plans: make(map[reflect.Type]V)}
}

// Get returns the cached plan for t, if present.
func (c *TypeCache[V]) Get(t reflect.Type) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.plans[t]
	return v, ok
}

// GetOrBuild returns the cached plan for t, building it with build (at most
// once across concurrent callers racing on the same t) and caching the
// result on success. build's error, if any, is not cached: a type that fails
// to build a plan (e.g. has not yet finished being registered) gets another
// chance on the next call.
func (c *TypeCache[V]) GetOrBuild(t reflect.Type, build func() (V, error)) (V, error) {
	if v, ok := c.Get(t); ok {
		return v, nil
	}

	result, err, _ := c.build.Do(t.String(), func() (any, error) {
		if v, ok := c.Get(t); ok {
			return v, nil
		}
		v, err := build()
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		c.plans[t] = v
		c.mu.Unlock()

		return v, nil
	})

	v, _ := result.(V)
	return v, err
}
