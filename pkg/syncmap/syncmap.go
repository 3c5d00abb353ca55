// Package syncmap provides a small generic, concurrency-safe map. It began
// life in the teacher repository as BitTorrent session-state storage; here
// it backs the Bencode named-variant registry (pkg/bencode/variant.go),
// where the keys are variant names and the values are the reflect.Type each
// name decodes into.
package syncmap

import "sync"

// Map is a concurrency-safe map from K to V.
type Map[K comparable, V any] struct {
	mut  sync.RWMutex
	data map[K]V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{data: make(map[K]V)}
}

// Put stores val under key, replacing any existing value.
func (m *Map[K, V]) Put(key K, val V) {
	m.mut.Lock()
	m.data[key] = val
	m.mut.Unlock()
}

// Get returns the value stored under key, if any.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mut.RLock()
	val, exists := m.data[key]
	m.mut.RUnlock()

	return val, exists
}

// Delete removes the given keys, if present.
func (m *Map[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		m.mut.Lock()
		delete(m.data, key)
		m.mut.Unlock()
	}
}

// Range calls f for every key/value pair currently stored, in no particular
// order. Range stops early if f returns false. f must not call back into
// the same Map; Range holds the read lock for its duration.
func (m *Map[K, V]) Range(f func(key K, val V) bool) {
	m.mut.RLock()
	defer m.mut.RUnlock()

	for k, v := range m.data {
		if !f(k, v) {
			return
		}
	}
}
