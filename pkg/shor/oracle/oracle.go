package oracle

import (
	"context"
	"errors"
	"math/bits"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/internal/modarith"
)

// ErrScriptExhausted is returned by Scripted once every measurement has been
// replayed.
var ErrScriptExhausted = errors.New("oracle: script exhausted")

// Oracle samples an approximate period of x -> a^x mod n.
type Oracle interface {
	Sample(ctx context.Context, n, a int64) (shor.Measurement, error)
}

// Func adapts a plain function to Oracle.
type Func func(ctx context.Context, n, a int64) (shor.Measurement, error)

// Sample calls f.
func (f Func) Sample(ctx context.Context, n, a int64) (shor.Measurement, error) {
	return f(ctx, n, a)
}

// RegisterBits returns 2*ceil(log2 n), the width of the register the oracle
// samples from.
func RegisterBits(n int64) uint {
	return 2 * modarith.CeilLog2(n)
}

// RegisterSize returns 2^RegisterBits(n).
func RegisterSize(n int64) int64 {
	return int64(1) << RegisterBits(n)
}

// Order returns the multiplicative order of a modulo n by repeated
// multiplication. It fails with shor.ErrInvalidParameter when a is not a unit.
func Order(n, a int64) (int64, error) {
	if err := shor.CheckModulus("oracle.Order", n); err != nil {
		return 0, err
	}
	a = modarith.Mod(a, n)
	if modarith.GCD(a, n) != 1 {
		return 0, shor.Errorf("oracle.Order", shor.ErrInvalidParameter, "gcd(%d, %d) != 1", a, n)
	}
	x := a
	for r := int64(1); r < n; r++ {
		if x == 1 {
			return r, nil
		}
		x = modarith.MulMod(x, a, n)
	}
	return 0, shor.Errorf("oracle.Order", shor.ErrPeriodNotFound, "a=%d n=%d", a, n)
}

// Exact is a deterministic stand-in that knows the true order.
type Exact struct {
	src shor.Source
}

// NewExact returns an Exact oracle. With a nil src every sample reports k=1
// (k=0 when the order is 1), so the measurement decodes to the exact order.
func NewExact(src shor.Source) *Exact {
	return &Exact{src: src}
}

// Sample reports round(k*Q/r)/Q for the order r of a modulo n.
func (e *Exact) Sample(ctx context.Context, n, a int64) (shor.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return shor.Measurement{}, err
	}
	r, err := Order(n, a)
	if err != nil {
		return shor.Measurement{}, err
	}
	q := RegisterSize(n)
	k := int64(1)
	switch {
	case r == 1:
		k = 0
	case e.src != nil:
		k = e.src.Int63n(r)
	}
	return shor.Measurement{Num: roundDiv(k, q, r), Den: q}, nil
}

// roundDiv returns round(k*q/r) without overflowing when k*q exceeds 64 bits.
func roundDiv(k, q, r int64) int64 {
	hi, lo := bits.Mul64(uint64(k), uint64(q))
	lo, carry := bits.Add64(lo, uint64(r/2), 0)
	hi += carry
	quo, _ := bits.Div64(hi, lo, uint64(r))
	return int64(quo)
}

// Scripted replays measurements in order, ignoring n and a.
type Scripted struct {
	script []shor.Measurement
	next   int
}

// NewScripted returns an oracle that replays ms once.
func NewScripted(ms ...shor.Measurement) *Scripted {
	return &Scripted{script: append([]shor.Measurement(nil), ms...)}
}

// Sample returns the next scripted measurement.
func (s *Scripted) Sample(ctx context.Context, n, a int64) (shor.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return shor.Measurement{}, err
	}
	if s.next >= len(s.script) {
		return shor.Measurement{}, ErrScriptExhausted
	}
	m := s.script[s.next]
	s.next++
	return m, nil
}

// Remaining reports how many measurements are left.
func (s *Scripted) Remaining() int {
	return len(s.script) - s.next
}

// Flaky zeroes the numerator of every n-th measurement from the wrapped
// oracle. A zero measurement carries no period information.
type Flaky struct {
	inner Oracle
	every int
	calls int
}

// NewFlaky wraps inner. every < 1 disables corruption.
func NewFlaky(inner Oracle, every int) *Flaky {
	return &Flaky{inner: inner, every: every}
}

// Sample forwards to the wrapped oracle and corrupts every n-th result.
func (f *Flaky) Sample(ctx context.Context, n, a int64) (shor.Measurement, error) {
	m, err := f.inner.Sample(ctx, n, a)
	if err != nil {
		return m, err
	}
	f.calls++
	if f.every > 0 && f.calls%f.every == 0 {
		m.Num = 0
	}
	return m, nil
}

// Calls reports how many samples were forwarded successfully.
func (f *Flaky) Calls() int {
	return f.calls
}
