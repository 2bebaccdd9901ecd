package math_test

import (
	gomath "math"
	"testing"

	"github.com/graph-guard/assoclist/pkg/math"
	"github.com/stretchr/testify/require"
)

func TestMax(t *testing.T) {
	require.Equal(t, 1.0, math.Max(-1.0, 1.0))
	require.Equal(t, 1.0, math.Max(1.0, -1.0))
	require.Equal(t, 7, math.Max(7, 7))
}

func TestMin(t *testing.T) {
	require.Equal(t, -1.0, math.Min(-1.0, 1.0))
	require.Equal(t, -1.0, math.Min(1.0, -1.0))
	require.Equal(t, uint8(3), math.Min[uint8](3, 200))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 4, math.Clamp(1, 4, 8))
	require.Equal(t, 8, math.Clamp(12, 4, 8))
	require.Equal(t, 5, math.Clamp(5, 4, 8))
}

func TestCheckedAdd(t *testing.T) {
	s, ok := math.CheckedAdd(3, 4)
	require.True(t, ok)
	require.Equal(t, 7, s)

	_, ok = math.CheckedAdd(gomath.MaxInt, 1)
	require.False(t, ok)

	_, ok = math.CheckedAdd(gomath.MinInt, -1)
	require.False(t, ok)

	_, ok = math.CheckedAdd[uint8](250, 6)
	require.False(t, ok)

	s8, ok := math.CheckedAdd[uint8](250, 5)
	require.True(t, ok)
	require.Equal(t, uint8(255), s8)
}

func TestCheckedMul(t *testing.T) {
	p, ok := math.CheckedMul(6, 7)
	require.True(t, ok)
	require.Equal(t, 42, p)

	p, ok = math.CheckedMul(0, gomath.MaxInt)
	require.True(t, ok)
	require.Zero(t, p)

	_, ok = math.CheckedMul(gomath.MaxInt/2+1, 2)
	require.False(t, ok)

	_, ok = math.CheckedMul(1<<40, 1<<40)
	require.False(t, ok)
}
