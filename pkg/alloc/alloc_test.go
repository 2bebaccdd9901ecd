package alloc_test

import (
	gomath "math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/graph-guard/assoclist/pkg/alloc"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocate(t *testing.T) {
	var h alloc.Heap[int]
	buf, err := h.Allocate(7)
	require.NoError(t, err)
	require.Len(t, buf, 0)
	require.Equal(t, 7, cap(buf))
}

func TestHeapAllocateNegative(t *testing.T) {
	var h alloc.Heap[int]
	_, err := h.Allocate(-1)
	require.True(t, errors.Is(err, alloc.ErrInvalidSize))
}

func TestHeapAllocateOverflow(t *testing.T) {
	var h alloc.Heap[[64]byte]
	_, err := h.Allocate(alloc.MaxSlots[[64]byte]() + 1)
	require.True(t, errors.Is(err, alloc.ErrCapacityOverflow))
}

func TestHeapGrowPreservesContents(t *testing.T) {
	var h alloc.Heap[string]
	buf, err := h.Allocate(2)
	require.NoError(t, err)
	buf = append(buf, "a", "b")

	grown, err := h.Grow(buf, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, grown)
	require.Equal(t, 5, cap(grown))

	_, err = h.Grow(grown, 3)
	require.True(t, errors.Is(err, alloc.ErrInvalidSize))
}

func TestHeapShrink(t *testing.T) {
	var h alloc.Heap[int]
	buf, err := h.Allocate(8)
	require.NoError(t, err)
	buf = append(buf, 1, 2, 3)

	shrunk, err := h.Shrink(buf, 3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, shrunk)
	require.Equal(t, 3, cap(shrunk))

	_, err = h.Shrink(shrunk, 2)
	require.True(t, errors.Is(err, alloc.ErrInvalidSize))
}

func TestMaxSlotsZeroSized(t *testing.T) {
	require.Equal(t, gomath.MaxInt, alloc.MaxSlots[struct{}]())
	require.Zero(t, alloc.SizeOf[struct{}](1000))
}

func TestSizeOf(t *testing.T) {
	require.Equal(t, 80, alloc.SizeOf[uint64](10))
	require.Equal(t, gomath.MaxInt, alloc.SizeOf[uint64](gomath.MaxInt))
}

func TestBudget(t *testing.T) {
	b := alloc.NewBudget[int](10)
	require.Equal(t, 10, b.Limit())

	buf, err := b.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 4, b.Used())

	buf, err = b.Grow(buf, 10)
	require.NoError(t, err)
	require.Equal(t, 10, b.Used())
	require.Zero(t, b.Available())

	_, err = b.Allocate(1)
	require.True(t, errors.Is(err, alloc.ErrExhausted))

	buf = append(buf, 1, 2)
	buf, err = b.Shrink(buf, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, buf)
	require.Equal(t, 2, b.Used())

	b.Deallocate(buf)
	require.Zero(t, b.Used())
	require.Equal(t, 10, b.Available())
}

func TestBudgetGrowExhausted(t *testing.T) {
	b := alloc.NewBudget[int](4)
	buf, err := b.Allocate(3)
	require.NoError(t, err)
	_, err = b.Grow(buf, 5)
	require.True(t, errors.Is(err, alloc.ErrExhausted))
	require.Equal(t, 3, b.Used(), "a failed grow must not consume budget")
}

func TestBudgetNegativeLimit(t *testing.T) {
	b := alloc.NewBudget[int](-3)
	require.Zero(t, b.Limit())
	_, err := b.Allocate(1)
	require.True(t, errors.Is(err, alloc.ErrExhausted))
}

func TestCounting(t *testing.T) {
	c := alloc.NewCounting[int](nil)
	buf, err := c.Allocate(2)
	require.NoError(t, err)
	buf, err = c.Grow(buf, 4)
	require.NoError(t, err)
	buf, err = c.Shrink(buf, 0)
	require.NoError(t, err)
	_, err = c.Grow(buf, -1)
	require.Error(t, err)
	c.Deallocate(buf)

	require.Equal(t, alloc.Stats{
		Allocations:   1,
		Grows:         2,
		Shrinks:       1,
		Deallocations: 1,
		Failures:      1,
	}, c.Stats())
	require.Equal(t, int64(3), c.Stats().Reallocations())
}

func TestCountingWrapsBudget(t *testing.T) {
	b := alloc.NewBudget[int](2)
	c := alloc.NewCounting[int](b)
	_, err := c.Allocate(3)
	require.True(t, errors.Is(err, alloc.ErrExhausted))
	require.Equal(t, int64(1), c.Stats().Failures)
	require.Zero(t, b.Used())
}
