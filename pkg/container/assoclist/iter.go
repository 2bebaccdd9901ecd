package assoclist

import "iter"

// The iterators below walk the pairs in storage order.
// Mutating the list while iterating is not allowed,
// except for writing values through AllMut and ValuesMut.

// All returns an iterator over all key-value pairs.
func (l *List[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range l.d {
			if !yield(l.d[i].Key, l.d[i].Value) {
				return
			}
		}
	}
}

// AllMut returns an iterator over all keys and pointers to their values.
func (l *List[K, V]) AllMut() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for i := range l.d {
			if !yield(l.d[i].Key, &l.d[i].Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys.
func (l *List[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range l.d {
			if !yield(l.d[i].Key) {
				return
			}
		}
	}
}

// Values returns an iterator over all values.
func (l *List[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range l.d {
			if !yield(l.d[i].Value) {
				return
			}
		}
	}
}

// ValuesMut returns an iterator over pointers to all values.
func (l *List[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range l.d {
			if !yield(&l.d[i].Value) {
				return
			}
		}
	}
}

// Visit calls fn for every pair in order until fn returns false.
func (l *List[K, V]) Visit(fn func(K, V) bool) {
	for i := range l.d {
		if !fn(l.d[i].Key, l.d[i].Value) {
			return
		}
	}
}

// Pairs returns a copy of all pairs.
func (l *List[K, V]) Pairs() []Pair[K, V] {
	p := make([]Pair[K, V], len(l.d))
	copy(p, l.d)
	return p
}
