package hir

// Arena is dense, insertion-ordered storage yielding stable 1-based handles.
// No entry is ever removed, so a handle returned by Insert remains valid for
// the arena's lifetime.
type Arena[T any] struct {
	entries []T
}

// Insert appends data to the arena and returns its handle.
func (a *Arena[T]) Insert(data T) uint32 {
	a.entries = append(a.entries, data)
	return uint32(len(a.entries))
}

// Get returns a copy of the entry at h. It panics if h is unset or out of
// range: callers are expected to only pass handles this arena produced.
func (a *Arena[T]) Get(h uint32) T {
	return a.entries[h-1]
}

// Ptr returns a pointer to the entry at h, for in-place mutation.
func (a *Arena[T]) Ptr(h uint32) *T {
	return &a.entries[h-1]
}

// Len reports the number of entries in the arena.
func (a *Arena[T]) Len() int { return len(a.entries) }

// Each calls fn for every (handle, entry) pair in insertion order. It stops
// early if fn returns false.
func (a *Arena[T]) Each(fn func(h uint32, data T) bool) {
	for i := range a.entries {
		if !fn(uint32(i+1), a.entries[i]) {
			return
		}
	}
}
