package period

import (
	"context"
	"math"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/contfrac"
	"github.com/hsiuhsiu/shor-go/pkg/shor/internal/modarith"
	"github.com/hsiuhsiu/shor-go/pkg/shor/logging"
	"github.com/hsiuhsiu/shor-go/pkg/shor/oracle"
)

// NotFound is the period reported alongside shor.ErrPeriodNotFound.
const NotFound int64 = -1

// Engine recovers periods through an injected oracle.
type Engine struct {
	oracle oracle.Oracle
	logger logging.Logger
	bound  int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes trace output to l.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMultiplierBound replaces the default ceil(sqrt(N))+1 multiplier bound.
// Values below 1 restore the default.
func WithMultiplierBound(bound int64) Option {
	return func(e *Engine) {
		e.bound = bound
	}
}

// New returns an Engine sampling from o.
func New(o oracle.Oracle, opts ...Option) *Engine {
	e := &Engine{oracle: o, logger: logging.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recovery records how a period was obtained.
type Recovery struct {
	Measurement shor.Measurement
	Convergent  shor.Convergent
	// Multiplier is the factor applied to Convergent.Den; 1 when the candidate
	// validated directly.
	Multiplier int64
	Period     int64
}

// Recover returns a period r of a modulo n with a^r ≡ 1 (mod n). On failure it
// returns NotFound and an error wrapping shor.ErrPeriodNotFound, the oracle's
// error, or shor.ErrInvalidParameter for a outside [1, n-1].
func (e *Engine) Recover(ctx context.Context, n, a int64) (int64, error) {
	rec, err := e.Run(ctx, n, a)
	if err != nil {
		return NotFound, err
	}
	return rec.Period, nil
}

// Run is Recover with the intermediate measurement and convergent.
func (e *Engine) Run(ctx context.Context, n, a int64) (*Recovery, error) {
	const op = "period.Recover"
	if err := shor.CheckModulus(op, n); err != nil {
		return nil, err
	}
	if a < 1 || a >= n {
		return nil, shor.Errorf(op, shor.ErrInvalidParameter, "base %d outside [1, %d]", a, n-1)
	}

	m, err := e.oracle.Sample(ctx, n, a)
	if err != nil {
		return nil, shor.Wrap(op, err)
	}
	c := contfrac.Approximate(m.Num, m.Den, oracle.RegisterSize(n))
	rec := &Recovery{Measurement: m, Convergent: c, Period: NotFound}
	e.logger.Debug(ctx, "measurement decoded", "n", n, "a", a, "measurement", m.String(), "convergent", c.String())

	bound := e.multiplierBound(n)
	for mult := int64(1); mult <= bound; mult++ {
		if c.Den > math.MaxInt64/mult {
			break
		}
		r := c.Den * mult
		if Validate(n, a, r) {
			rec.Multiplier = mult
			rec.Period = r
			e.logger.Info(ctx, "period recovered", "n", n, "a", a, "r", r, "multiplier", mult)
			return rec, nil
		}
	}
	e.logger.Warn(ctx, "period not found", "n", n, "a", a, "candidate", c.Den, "bound", bound)
	return rec, shor.Errorf(op, shor.ErrPeriodNotFound, "a=%d n=%d candidate=%d", a, n, c.Den)
}

func (e *Engine) multiplierBound(n int64) int64 {
	if e.bound >= 1 {
		return e.bound
	}
	return MultiplierBound(n)
}

// MultiplierBound returns ceil(sqrt(n))+1.
func MultiplierBound(n int64) int64 {
	return modarith.CeilSqrt(n) + 1
}

// Validate reports whether r is a positive period of a modulo n.
func Validate(n, a, r int64) bool {
	return r > 0 && modarith.Exp(a, r, n) == 1
}

// Pow returns a^e mod n.
func (e *Engine) Pow(n, a, exp int64) int64 {
	return modarith.Exp(a, exp, n)
}

// RegisterWidth returns ceil(log2 n).
func RegisterWidth(n int64) uint {
	return modarith.CeilLog2(n)
}
