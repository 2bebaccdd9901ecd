package assoclist

import "iter"

// Of creates a new list from pairs comparing keys using the == operator.
// Later pairs overwrite the values of earlier pairs with an equal key.
func Of[K comparable, V any](pairs ...Pair[K, V]) *List[K, V] {
	l := New(WithCapacity[K, V](len(pairs)))
	for _, p := range pairs {
		l.Insert(p.Key, p.Value)
	}
	return l
}

// OfFunc is like Of but compares keys using eq.
func OfFunc[K, V any](eq func(a, b K) bool, pairs ...Pair[K, V]) *List[K, V] {
	l := NewFunc(eq, WithCapacity[K, V](len(pairs)))
	for _, p := range pairs {
		l.Insert(p.Key, p.Value)
	}
	return l
}

// Collect creates a new list from the pairs of seq
// comparing keys using the == operator.
// Later pairs overwrite the values of earlier pairs with an equal key.
func Collect[K comparable, V any](
	seq iter.Seq2[K, V],
	opts ...Option[K, V],
) *List[K, V] {
	l := New(opts...)
	l.Extend(seq)
	return l
}

// Extend inserts all pairs of seq.
func (l *List[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		l.Insert(k, v)
	}
}
