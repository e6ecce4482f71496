package hir

import "github.com/dolthub/swiss"

// OrderedSet is an insertion-order-preserving set, used for a Scope's
// symbols and hoisted_symbols. Membership is O(1) via a swiss table; order is
// kept in a side slice so iteration reproduces source order.
type OrderedSet[T comparable] struct {
	index *swiss.Map[T, int]
	order []T
}

// NewOrderedSet returns an empty set with initial capacity for at least size
// elements.
func NewOrderedSet[T comparable](size int) *OrderedSet[T] {
	if size < 1 {
		size = 1
	}
	return &OrderedSet[T]{index: swiss.NewMap[T, int](uint32(size))}
}

// Add inserts v if not already present, and reports whether it was added.
func (s *OrderedSet[T]) Add(v T) bool {
	if s.index.Has(v) {
		return false
	}
	s.index.Put(v, len(s.order))
	s.order = append(s.order, v)
	return true
}

// Has reports whether v is a member of the set.
func (s *OrderedSet[T]) Has(v T) bool { return s.index.Has(v) }

// Len reports the number of elements in the set.
func (s *OrderedSet[T]) Len() int { return len(s.order) }

// Each calls fn for every element in insertion order, stopping early if fn
// returns false.
func (s *OrderedSet[T]) Each(fn func(v T) bool) {
	for _, v := range s.order {
		if !fn(v) {
			return
		}
	}
}

// Slice returns the set's elements in insertion order. The returned slice
// must not be mutated by the caller.
func (s *OrderedSet[T]) Slice() []T { return s.order }

// OrderedMap is an insertion-order-preserving map, used for Object type and
// symbol fields where both lookup by key and stable iteration are needed.
type OrderedMap[K comparable, V any] struct {
	index *swiss.Map[K, int]
	keys  []K
	vals  []V
}

// NewOrderedMap returns an empty map with initial capacity for at least size
// entries.
func NewOrderedMap[K comparable, V any](size int) *OrderedMap[K, V] {
	if size < 1 {
		size = 1
	}
	return &OrderedMap[K, V]{index: swiss.NewMap[K, int](uint32(size))}
}

// Set inserts or overwrites the value for key, preserving the key's original
// position if it was already present.
func (m *OrderedMap[K, V]) Set(key K, val V) {
	if i, ok := m.index.Get(key); ok {
		m.vals[i] = val
		return
	}
	m.index.Put(key, len(m.keys))
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Get looks up key, reporting whether it was found.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.index.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Len reports the number of entries in the map.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// Each calls fn for every (key, value) pair in insertion order, stopping
// early if fn returns false.
func (m *OrderedMap[K, V]) Each(fn func(key K, val V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}
