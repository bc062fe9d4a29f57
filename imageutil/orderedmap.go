package imageutil

// OrderedMap is a map that remembers insertion order. It is not safe for
// concurrent mutation.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Set adds or replaces a value. A new key goes to the end of the order.
func (om *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get retrieves the value stored for key.
func (om *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := om.values[key]
	return v, ok
}

// Keys returns a copy of the keys in insertion order.
func (om *OrderedMap[K, V]) Keys() []K {
	return append([]K(nil), om.keys...)
}

// Iterate calls f for each pair in insertion order.
func (om *OrderedMap[K, V]) Iterate(f func(key K, value V)) {
	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of entries.
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}
