// Package math provides small generic numeric helpers
// used by capacity arithmetic.
package math

import "golang.org/x/exp/constraints"

// NumberInterface is a generic number interface for all number types.
type NumberInterface interface {
	constraints.Integer | constraints.Float
}

// Max calculates the maximum of two numbers.
func Max[T NumberInterface](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min calculates the minimum of two numbers.
func Min[T NumberInterface](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T NumberInterface](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}

// CheckedAdd returns a+b and false if the addition overflowed T.
func CheckedAdd[T constraints.Integer](a, b T) (sum T, ok bool) {
	sum = a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// CheckedMul returns a*b and false if the multiplication overflowed T.
// Both operands must be non-negative.
func CheckedMul[T constraints.Integer](a, b T) (product T, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product = a * b
	if product/b != a || product < 0 {
		return 0, false
	}
	return product, true
}
