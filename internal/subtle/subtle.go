// Package subtle provides constant-time helpers shared by the lattice
// engines. Every function in this package runs in time independent of
// its secret inputs; none of them branch or index memory on secret
// data.
package subtle

import stdsubtle "crypto/subtle"

// Less returns 1 when a < b and 0 otherwise, working over the signed
// 16-bit range without branching. The operands are biased into
// unsigned space so the borrow of the subtraction becomes the result.
func Less(a, b int16) int {
	x := uint32(uint16(a) ^ 0x8000)
	y := uint32(uint16(b) ^ 0x8000)
	return int((x - y) >> 31)
}

// Greater returns 1 when a > b and 0 otherwise.
func Greater(a, b int16) int {
	return Less(b, a)
}

// DecodeBit maps a canonical coefficient in [0, q) for q = 3329 to the
// message bit it carries: 1 when the coefficient lies strictly between
// q/4 and 3q/4, and 0 otherwise.
func DecodeBit(c int16) byte {
	return byte(Greater(c, 832) & Less(c, 2497))
}

// CaddQ16 conditionally adds q to x when x is negative, mapping a
// centered representative in (-q, q) to its canonical value in [0, q).
func CaddQ16(x, q int16) int16 {
	return x + ((x >> 15) & q)
}

// CaddQ32 is CaddQ16 for 32-bit coefficient rings.
func CaddQ32(x, q int32) int32 {
	return x + ((x >> 31) & q)
}

// NormBounded reports whether every coefficient c satisfies |c| < bound
// in the strict sense. It always scans the full slice; the bound check
// itself is branch-free so rejection timing leaks nothing about where a
// violation sits.
func NormBounded(coeffs []int32, bound int32) bool {
	var violated uint32
	for _, c := range coeffs {
		m := c >> 31
		abs := (c ^ m) - m
		violated |= uint32(bound-1-abs) >> 31
	}
	return violated == 0
}

// RejectionSample runs sample exactly maxIterations times and returns
// the first accepted value. The iteration count never depends on where
// acceptance happened, so callers can use it on secret-derived streams
// without leaking the acceptance position.
func RejectionSample[T any](maxIterations int, sample func(i int) (T, bool)) (result T, ok bool) {
	for i := 0; i < maxIterations; i++ {
		v, accepted := sample(i)
		if accepted && !ok {
			result = v
			ok = true
		}
	}
	return result, ok
}

// Equal compares two byte slices in constant time. Slices of different
// lengths compare unequal without inspecting contents.
func Equal(a, b []byte) bool {
	return EqualMask(a, b) == 1
}

// EqualMask compares two byte slices in constant time and returns the
// result as a mask suitable for Select: 1 when equal, 0 otherwise. Use
// it instead of Equal when the comparison result itself is secret and
// must not feed a branch.
func EqualMask(a, b []byte) int {
	if len(a) != len(b) {
		return 0
	}
	return stdsubtle.ConstantTimeCompare(a, b)
}

// Select returns a fresh slice holding a when mask is 1 and b when mask
// is 0. Both inputs must have the same length.
func Select(mask int, a, b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	stdsubtle.ConstantTimeCopy(mask, out, a)
	return out
}
