// Package alloc defines the allocation capability used by the
// containers of this module to obtain, resize and release their
// contiguous backing storage.
//
// All buffers handed out by an Allocator have a capacity of exactly
// the requested number of slots, which makes capacity accounting
// deterministic for the caller.
package alloc

import (
	gomath "math"
	"unsafe"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCapacityOverflow is returned when the requested number of slots
	// can't be represented by the host allocation facility.
	ErrCapacityOverflow = errors.New("capacity overflow")

	// ErrExhausted is returned by bounded allocators
	// when a request exceeds the remaining budget.
	ErrExhausted = errors.New("allocator exhausted")

	// ErrInvalidSize is returned when a buffer is resized below its length
	// or a negative number of slots is requested.
	ErrInvalidSize = errors.New("invalid size")
)

// Allocator is the storage capability a container depends on.
// Implementations must preserve the first len(buf) elements
// on Grow and Shrink and return buffers with cap == n.
type Allocator[T any] interface {
	// Allocate returns an empty buffer with capacity n.
	Allocate(n int) ([]T, error)

	// Grow returns a buffer with capacity n holding the contents of buf.
	// n must not be less than cap(buf).
	Grow(buf []T, n int) ([]T, error)

	// Shrink returns a buffer with capacity n holding the contents of buf.
	// n must be within [len(buf), cap(buf)].
	Shrink(buf []T, n int) ([]T, error)

	// Deallocate releases buf. buf must not be used afterwards.
	Deallocate(buf []T)
}

// maxAllocBytes mirrors the largest allocation the Go runtime accepts
// on the current architecture.
const maxAllocBytes = 1 << (30 + 17*(^uint(0)>>63))

// MaxSlots returns the maximum number of elements of type T
// a single buffer may hold.
func MaxSlots[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return gomath.MaxInt
	}
	return maxAllocBytes / size
}

// SizeOf returns the size of n elements of type T in bytes,
// saturating at math.MaxInt.
func SizeOf[T any](n int) int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size != 0 && n > gomath.MaxInt/size {
		return gomath.MaxInt
	}
	return n * size
}

func checkSlots[T any](n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidSize, "requested %d slots", n)
	}
	if limit := MaxSlots[T](); n > limit {
		return errors.Wrapf(
			ErrCapacityOverflow, "requested %d slots, at most %d allowed", n, limit,
		)
	}
	return nil
}

func checkGrow[T any](buf []T, n int) error {
	if n < cap(buf) {
		return errors.Wrapf(
			ErrInvalidSize, "growing from %d to %d slots", cap(buf), n,
		)
	}
	return checkSlots[T](n)
}

func checkShrink[T any](buf []T, n int) error {
	if n < len(buf) || n > cap(buf) {
		return errors.Wrapf(
			ErrInvalidSize,
			"shrinking to %d slots with length %d and capacity %d",
			n, len(buf), cap(buf),
		)
	}
	return nil
}
