package shor

import "fmt"

const (
	// MinModulus is the smallest modulus accepted by the engine.
	MinModulus = 3
	// MaxModulus bounds N so that the register size 2^(2*ceil(log2 N)) fits in
	// an int64.
	MaxModulus = 1 << 31
)

// Measurement is a rational Num/Den reported by an oracle. Den is the register
// size, a power of two.
type Measurement struct {
	Num int64
	Den int64
}

func (m Measurement) String() string {
	return fmt.Sprintf("%d/%d", m.Num, m.Den)
}

// Convergent is one truncation of a continued-fraction expansion. Den is a
// period candidate.
type Convergent struct {
	Num int64
	Den int64
}

func (c Convergent) String() string {
	return fmt.Sprintf("%d/%d", c.Num, c.Den)
}

// KeyMaterial is the private key recovered by a successful run.
//
// On the factoring path P and Q are the prime factors and Order is
// (P-1)(Q-1). On the direct path through the ciphertext order, P and Q are
// zero and Order is the order of the ciphertext.
type KeyMaterial struct {
	P     int64
	Q     int64
	D     int64
	Order int64
}

// CheckModulus reports whether n is in [MinModulus, MaxModulus).
func CheckModulus(op string, n int64) error {
	if n >= MaxModulus {
		return Errorf(op, ErrModulusTooLarge, "n=%d", n)
	}
	if n < MinModulus {
		return Errorf(op, ErrInvalidParameter, "n=%d", n)
	}
	return nil
}

// Source is the injectable randomness used to pick bases and measurement
// outcomes. *math/rand.Rand satisfies it.
type Source interface {
	// Int63n returns a uniform value in [0, n). n must be positive.
	Int63n(n int64) int64
}
