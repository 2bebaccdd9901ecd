// Package container defines the key-value contract shared by
// the containers of this module and their reference implementations.
package container

// Mapper is a key-value container.
type Mapper[K, V any] interface {
	// Insert associates key with value returning the previous value
	// and true if the key already existed.
	Insert(key K, value V) (prev V, replaced bool)

	// Remove removes key returning its value and true if it existed.
	Remove(key K) (V, bool)

	// Get returns the value associated with key.
	Get(key K) (V, bool)

	// ContainsKey returns true if a value is associated with key.
	ContainsKey(key K) bool

	// Len returns the number of stored pairs.
	Len() int

	// Clear removes all pairs.
	Clear()

	// Visit calls fn for every pair until fn returns false.
	Visit(fn func(K, V) bool)
}
