package di

// MultiMap maps a key to an ordered list of values.
//
// Add never mutates a slice previously returned by Get, so callers may keep
// the result of Get while the map keeps growing.
type MultiMap[K comparable, V any] struct {
	m map[K][]V
}

// NewMultiMap returns an empty map.
func NewMultiMap[K comparable, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{m: make(map[K][]V)}
}

// Get returns the values stored under key in insertion order.
func (mm *MultiMap[K, V]) Get(key K) ([]V, bool) {
	if mm == nil {
		return nil, false
	}
	vals, ok := mm.m[key]
	return vals, ok
}

// Add appends val to the values stored under key.
func (mm *MultiMap[K, V]) Add(key K, val V) {
	old := mm.m[key]
	vals := make([]V, len(old), len(old)+1)
	copy(vals, old)
	mm.m[key] = append(vals, val)
}

// size returns the number of keys.
func (mm *MultiMap[K, V]) size() int {
	if mm == nil {
		return 0
	}
	return len(mm.m)
}

// Clone returns a map seeded with the same lists. Adding to either map
// afterwards does not affect the other.
func (mm *MultiMap[K, V]) Clone() *MultiMap[K, V] {
	out := NewMultiMap[K, V]()
	if mm == nil {
		return out
	}
	for k, v := range mm.m {
		out.m[k] = v
	}
	return out
}
