// Package assoclist provides an associated list: a map-like container
// backed by a contiguous slice of key-value pairs whose keys only need
// to support equality comparison.
//
// Every key-addressed operation performs a linear scan, so most methods
// run in O(n). Prefer Go's native map whenever the key type is hashable
// and the dataset is large. A List exists for keys that can't be hashed
// or ordered, and for small datasets where a scan beats hashing.
//
// Removal shifts the following pairs to the left, so the iteration order
// is always the insertion order of the pairs still present.
//
// A List is not safe for concurrent use.
//
// WARNING: keys for which the equality function reports false even when
// compared with themselves (such as floating point NaN) can be inserted
// but are never found again. Each insertion of such a key appends a new pair.
package assoclist

import (
	"fmt"
	"strings"

	"github.com/graph-guard/assoclist/pkg/alloc"
	plog "github.com/phuslu/log"
)

// Pair is a key-value pair.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// P creates a new key-value pair.
func P[K, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

// Equaler is implemented by key types providing their own equality.
type Equaler[K any] interface{ Equal(K) bool }

// List is an associated list.
//
// The backing storage is only ever resized through the allocator,
// so Cap reports exactly the number of slots granted by it.
type List[K, V any] struct {
	d     []Pair[K, V]
	eq    func(a, b K) bool
	alloc alloc.Allocator[Pair[K, V]]
	log   *plog.Logger
}

// Option configures a List during initialization.
type Option[K, V any] func(*options[K, V])

type options[K, V any] struct {
	capacity  int
	allocator alloc.Allocator[Pair[K, V]]
	logger    *plog.Logger
}

// WithCapacity preallocates exactly n slots.
func WithCapacity[K, V any](n int) Option[K, V] {
	return func(o *options[K, V]) { o.capacity = n }
}

// WithAllocator makes the list obtain all of its storage from a.
// By default alloc.Heap is used.
func WithAllocator[K, V any](a alloc.Allocator[Pair[K, V]]) Option[K, V] {
	return func(o *options[K, V]) { o.allocator = a }
}

// WithLogger makes the list log storage reallocations at debug level.
func WithLogger[K, V any](l *plog.Logger) Option[K, V] {
	return func(o *options[K, V]) { o.logger = l }
}

// New creates a new list comparing keys using the == operator.
func New[K comparable, V any](opts ...Option[K, V]) *List[K, V] {
	return NewFunc(func(a, b K) bool { return a == b }, opts...)
}

// NewEqual creates a new list comparing keys using their Equal method.
func NewEqual[K Equaler[K], V any](opts ...Option[K, V]) *List[K, V] {
	return NewFunc(func(a, b K) bool { return a.Equal(b) }, opts...)
}

// NewFunc creates a new list comparing keys using eq.
// eq is always called with the stored key as a
// and the key passed to the method as b.
//
// Panics if eq is nil or the initial capacity can't be allocated.
func NewFunc[K, V any](
	eq func(a, b K) bool,
	opts ...Option[K, V],
) *List[K, V] {
	if eq == nil {
		panic("assoclist: nil equality function")
	}
	var o options[K, V]
	for _, opt := range opts {
		opt(&o)
	}
	l := &List[K, V]{
		eq:    eq,
		alloc: o.allocator,
		log:   o.logger,
	}
	if l.alloc == nil {
		l.alloc = alloc.Heap[Pair[K, V]]{}
	}
	if o.capacity != 0 {
		d, err := l.alloc.Allocate(o.capacity)
		if err != nil {
			panic(err)
		}
		l.d = d
	}
	return l
}

// Len returns the number of stored pairs.
func (l *List[K, V]) Len() int { return len(l.d) }

// IsEmpty returns true if the list contains no pairs.
func (l *List[K, V]) IsEmpty() bool { return len(l.d) == 0 }

// locate returns the index of the pair associated with key or -1.
func (l *List[K, V]) locate(key K) int {
	for i := range l.d {
		if l.eq(l.d[i].Key, key) {
			return i
		}
	}
	return -1
}

// Get returns the value associated with key.
func (l *List[K, V]) Get(key K) (value V, ok bool) {
	if i := l.locate(key); i >= 0 {
		return l.d[i].Value, true
	}
	return value, false
}

// GetPtr returns a pointer to the value associated with key
// or nil if there is none. The pointer is valid until
// the next mutation of the list.
func (l *List[K, V]) GetPtr(key K) *V {
	if i := l.locate(key); i >= 0 {
		return &l.d[i].Value
	}
	return nil
}

// GetKeyValue returns the stored key and the value associated with key.
func (l *List[K, V]) GetKeyValue(key K) (k K, v V, ok bool) {
	if i := l.locate(key); i >= 0 {
		return l.d[i].Key, l.d[i].Value, true
	}
	return k, v, false
}

// ContainsKey returns true if a value is associated with key.
func (l *List[K, V]) ContainsKey(key K) bool {
	return l.locate(key) >= 0
}

// Insert associates key with value.
// If the key already exists its value is replaced and the previous
// value is returned with replaced set to true. The stored key isn't
// replaced. Otherwise the pair is appended growing storage if necessary.
//
// Panics if storage needs to grow and the allocator fails.
func (l *List[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	if i := l.locate(key); i >= 0 {
		prev, l.d[i].Value = l.d[i].Value, value
		return prev, true
	}
	l.push(key, value)
	return prev, false
}

// Remove removes the pair associated with key and returns its value.
// The order of the remaining pairs is preserved.
func (l *List[K, V]) Remove(key K) (value V, ok bool) {
	_, value, ok = l.RemoveEntry(key)
	return value, ok
}

// RemoveEntry removes the pair associated with key
// and returns the stored key and its value.
// The order of the remaining pairs is preserved.
func (l *List[K, V]) RemoveEntry(key K) (k K, v V, ok bool) {
	i := l.locate(key)
	if i < 0 {
		return k, v, false
	}
	p := l.removeAt(i)
	return p.Key, p.Value, true
}

// Clear removes all pairs keeping the allocated capacity.
func (l *List[K, V]) Clear() {
	clear(l.d)
	l.d = l.d[:0]
}

// Drain removes all pairs keeping the allocated capacity
// and returns them in storage order.
func (l *List[K, V]) Drain() []Pair[K, V] {
	if len(l.d) == 0 {
		return nil
	}
	drained := make([]Pair[K, V], len(l.d))
	copy(drained, l.d)
	l.Clear()
	return drained
}

// Release removes all pairs and returns the storage to the allocator.
// The list remains usable and allocates again when needed.
func (l *List[K, V]) Release() {
	if l.d == nil {
		return
	}
	from := cap(l.d)
	clear(l.d)
	l.alloc.Deallocate(l.d)
	l.d = nil
	if l.log != nil {
		l.log.Debug().Int("from", from).Int("to", 0).Msg("release")
	}
}

// Clone returns a copy of the list sharing its equality function,
// allocator and logger. The capacity of the copy equals its length.
//
// Panics if the allocator fails.
func (l *List[K, V]) Clone() *List[K, V] {
	c := &List[K, V]{eq: l.eq, alloc: l.alloc, log: l.log}
	if len(l.d) > 0 {
		d, err := c.alloc.Allocate(len(l.d))
		if err != nil {
			panic(err)
		}
		c.d = append(d, l.d...)
	}
	return c
}

// String formats the pairs in storage order as [k1:v1 k2:v2].
func (l *List[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range l.d {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", l.d[i].Key, l.d[i].Value)
	}
	b.WriteByte(']')
	return b.String()
}

func (l *List[K, V]) push(key K, value V) {
	if len(l.d) == cap(l.d) {
		l.Reserve(1)
	}
	l.d = l.d[:len(l.d)+1]
	l.d[len(l.d)-1] = Pair[K, V]{Key: key, Value: value}
}

// removeAt shifts all pairs following i to the left.
func (l *List[K, V]) removeAt(i int) Pair[K, V] {
	p := l.d[i]
	last := len(l.d) - 1
	copy(l.d[i:], l.d[i+1:])
	l.d[last] = Pair[K, V]{}
	l.d = l.d[:last]
	return p
}
