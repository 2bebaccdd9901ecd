package alloc

import "sync/atomic"

// Stats is a snapshot of the calls observed by a Counting allocator.
type Stats struct {
	Allocations   int64
	Grows         int64
	Shrinks       int64
	Deallocations int64
	Failures      int64
}

// Reallocations returns the number of calls that
// moved storage to a buffer of a different size.
func (s Stats) Reallocations() int64 {
	return s.Grows + s.Shrinks
}

// Counting wraps another Allocator and counts the calls made to it.
type Counting[T any] struct {
	underlying Allocator[T]

	allocations   int64
	grows         int64
	shrinks       int64
	deallocations int64
	failures      int64
}

var _ Allocator[int] = (*Counting[int])(nil)

// NewCounting wraps underlying. A nil underlying allocator
// is replaced by Heap.
func NewCounting[T any](underlying Allocator[T]) *Counting[T] {
	if underlying == nil {
		underlying = Heap[T]{}
	}
	return &Counting[T]{underlying: underlying}
}

// Stats returns the current counters.
func (c *Counting[T]) Stats() Stats {
	return Stats{
		Allocations:   atomic.LoadInt64(&c.allocations),
		Grows:         atomic.LoadInt64(&c.grows),
		Shrinks:       atomic.LoadInt64(&c.shrinks),
		Deallocations: atomic.LoadInt64(&c.deallocations),
		Failures:      atomic.LoadInt64(&c.failures),
	}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	atomic.AddInt64(&c.allocations, 1)
	return c.count(c.underlying.Allocate(n))
}

func (c *Counting[T]) Grow(buf []T, n int) ([]T, error) {
	atomic.AddInt64(&c.grows, 1)
	return c.count(c.underlying.Grow(buf, n))
}

func (c *Counting[T]) Shrink(buf []T, n int) ([]T, error) {
	atomic.AddInt64(&c.shrinks, 1)
	return c.count(c.underlying.Shrink(buf, n))
}

func (c *Counting[T]) Deallocate(buf []T) {
	atomic.AddInt64(&c.deallocations, 1)
	c.underlying.Deallocate(buf)
}

func (c *Counting[T]) count(buf []T, err error) ([]T, error) {
	if err != nil {
		atomic.AddInt64(&c.failures, 1)
	}
	return buf, err
}
