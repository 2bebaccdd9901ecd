package assoclist

import (
	"github.com/cockroachdb/errors"
	"github.com/graph-guard/assoclist/pkg/alloc"
	"github.com/graph-guard/assoclist/pkg/math"
)

// minNonZeroCap is the smallest capacity an amortized grow allocates.
const minNonZeroCap = 4

// Cap returns the number of slots backed by allocated storage.
func (l *List[K, V]) Cap() int { return cap(l.d) }

// Reserve ensures there's room for at least additional more pairs.
// Storage grows geometrically (doubling) so the new capacity
// may exceed the requested one.
//
// Panics if the capacity overflows or the allocator fails.
func (l *List[K, V]) Reserve(additional int) {
	if err := l.TryReserve(additional); err != nil {
		panic(err)
	}
}

// TryReserve is like Reserve but returns an error
// instead of panicking. The list is left unchanged on error.
func (l *List[K, V]) TryReserve(additional int) error {
	required, err := l.required(additional)
	if err != nil || required <= cap(l.d) {
		return err
	}
	return l.grow(math.Max(required, l.amortizedCap()))
}

// ReserveExact ensures there's room for exactly additional more pairs
// without allocating headroom.
//
// Panics if the capacity overflows or the allocator fails.
func (l *List[K, V]) ReserveExact(additional int) {
	if err := l.TryReserveExact(additional); err != nil {
		panic(err)
	}
}

// TryReserveExact is like ReserveExact but returns an error
// instead of panicking. The list is left unchanged on error.
func (l *List[K, V]) TryReserveExact(additional int) error {
	required, err := l.required(additional)
	if err != nil || required <= cap(l.d) {
		return err
	}
	return l.grow(required)
}

// Shrink reduces the capacity to the greater of minCapacity and Len.
// Does nothing if the capacity is already lower.
//
// Panics if the allocator fails.
func (l *List[K, V]) Shrink(minCapacity int) {
	target := math.Max(len(l.d), minCapacity)
	if target >= cap(l.d) {
		return
	}
	from := cap(l.d)
	d, err := l.alloc.Shrink(l.d, target)
	if err != nil {
		panic(err)
	}
	l.d = d
	if l.log != nil {
		l.log.Debug().Int("from", from).Int("to", target).Msg("shrink")
	}
}

// ShrinkToFit reduces the capacity to Len.
//
// Panics if the allocator fails.
func (l *List[K, V]) ShrinkToFit() { l.Shrink(0) }

func (l *List[K, V]) required(additional int) (int, error) {
	if additional < 0 {
		return 0, errors.Wrapf(
			alloc.ErrInvalidSize, "reserving %d additional slots", additional,
		)
	}
	required, ok := math.CheckedAdd(len(l.d), additional)
	if !ok {
		return 0, errors.Wrapf(
			alloc.ErrCapacityOverflow,
			"reserving %d slots in addition to %d", additional, len(l.d),
		)
	}
	return required, nil
}

// amortizedCap returns the doubled capacity
// limited to what a single buffer may hold.
func (l *List[K, V]) amortizedCap() int {
	limit := alloc.MaxSlots[Pair[K, V]]()
	doubled, ok := math.CheckedMul(cap(l.d), 2)
	if !ok {
		return limit
	}
	return math.Clamp(doubled, minNonZeroCap, limit)
}

func (l *List[K, V]) grow(n int) error {
	from := cap(l.d)
	var d []Pair[K, V]
	var err error
	if from == 0 {
		d, err = l.alloc.Allocate(n)
	} else {
		d, err = l.alloc.Grow(l.d, n)
	}
	if err != nil {
		return err
	}
	l.d = d[:len(l.d)]
	if l.log != nil {
		l.log.Debug().Int("from", from).Int("to", n).Msg("grow")
	}
	return nil
}
