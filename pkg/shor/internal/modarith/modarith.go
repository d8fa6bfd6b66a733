package modarith

import (
	"math/big"
	"math/bits"

	"github.com/cronokirby/saferith"
)

// Exp returns base^exp mod m. base may be negative or larger than m; exp must
// be non-negative. m must be positive.
func Exp(base, exp, m int64) int64 {
	if m == 1 {
		return 0
	}
	b := uint64(Mod(base, m))
	e := uint64(exp)
	if m&1 == 0 {
		// saferith's even-modulus path does not seed its accumulator.
		r := new(big.Int).Exp(new(big.Int).SetUint64(b), new(big.Int).SetUint64(e), big.NewInt(m))
		return r.Int64()
	}
	mod := saferith.ModulusFromUint64(uint64(m))
	x := new(saferith.Nat).SetUint64(b)
	y := new(saferith.Nat).SetUint64(e)
	return int64(new(saferith.Nat).Exp(x, y, mod).Uint64())
}

// MulMod returns a*b mod m for a, b in [0, m).
func MulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi%uint64(m), lo, uint64(m))
	return int64(rem)
}

// Mod returns a mod m in [0, m).
func Mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// CeilLog2 returns the smallest k with 2^k >= n, for n >= 1.
func CeilLog2(n int64) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len64(uint64(n - 1)))
}

// CeilSqrt returns the smallest s with s*s >= n, for n >= 0.
func CeilSqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	s := new(big.Int).Sqrt(big.NewInt(n)).Int64()
	if s*s < n {
		s++
	}
	return s
}
