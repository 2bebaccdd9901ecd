package alloc

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Budget is a bounded Allocator that hands out at most a fixed number
// of slots across all buffers it has allocated and not yet released.
// A Budget may be shared by several containers.
type Budget[T any] struct {
	lock  sync.Mutex
	limit int
	used  int
}

var _ Allocator[int] = (*Budget[int])(nil)

// NewBudget creates a new bounded allocator granting up to limit slots.
func NewBudget[T any](limit int) *Budget[T] {
	if limit < 0 {
		limit = 0
	}
	return &Budget[T]{limit: limit}
}

// Limit returns the total number of slots the allocator may grant.
func (b *Budget[T]) Limit() int { return b.limit }

// Used returns the number of slots currently granted.
func (b *Budget[T]) Used() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.used
}

// Available returns the number of slots that can still be granted.
func (b *Budget[T]) Available() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.limit - b.used
}

// Allocate returns an empty buffer with capacity n.
func (b *Budget[T]) Allocate(n int) ([]T, error) {
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if err := b.take(n); err != nil {
		return nil, err
	}
	return make([]T, 0, n), nil
}

// Grow copies buf into a new buffer with capacity n.
func (b *Budget[T]) Grow(buf []T, n int) ([]T, error) {
	if err := checkGrow(buf, n); err != nil {
		return nil, err
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if err := b.take(n - cap(buf)); err != nil {
		return nil, err
	}
	if n == cap(buf) {
		return buf, nil
	}
	return move(buf, n), nil
}

// Shrink copies buf into a new buffer with capacity n
// and returns the released slots to the budget.
func (b *Budget[T]) Shrink(buf []T, n int) ([]T, error) {
	if err := checkShrink(buf, n); err != nil {
		return nil, err
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.used -= cap(buf) - n
	if n == cap(buf) {
		return buf, nil
	}
	return move(buf, n), nil
}

// Deallocate returns all slots of buf to the budget.
func (b *Budget[T]) Deallocate(buf []T) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.used -= cap(buf)
	if b.used < 0 {
		b.used = 0
	}
}

func (b *Budget[T]) take(n int) error {
	if n > b.limit-b.used {
		return errors.Wrapf(
			ErrExhausted, "requested %d slots, %d of %d in use",
			n, b.used, b.limit,
		)
	}
	b.used += n
	return nil
}
