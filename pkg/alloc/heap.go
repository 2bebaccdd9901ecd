package alloc

// Heap is the default Allocator backed by the Go runtime heap.
// The zero value is ready for use.
type Heap[T any] struct{}

var _ Allocator[int] = Heap[int]{}

// Allocate returns an empty buffer with capacity n.
func (Heap[T]) Allocate(n int) ([]T, error) {
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	return make([]T, 0, n), nil
}

// Grow copies buf into a new buffer with capacity n.
func (Heap[T]) Grow(buf []T, n int) ([]T, error) {
	if err := checkGrow(buf, n); err != nil {
		return nil, err
	}
	if n == cap(buf) {
		return buf, nil
	}
	return move(buf, n), nil
}

// Shrink copies buf into a new buffer with capacity n.
func (Heap[T]) Shrink(buf []T, n int) ([]T, error) {
	if err := checkShrink(buf, n); err != nil {
		return nil, err
	}
	if n == cap(buf) {
		return buf, nil
	}
	return move(buf, n), nil
}

// Deallocate is a no-op, the garbage collector reclaims buf.
func (Heap[T]) Deallocate([]T) {}

func move[T any](buf []T, n int) []T {
	d := make([]T, len(buf), n)
	copy(d, buf)
	return d
}
