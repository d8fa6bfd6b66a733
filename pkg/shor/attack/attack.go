package attack

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/internal/modarith"
	"github.com/hsiuhsiu/shor-go/pkg/shor/logging"
	"github.com/hsiuhsiu/shor-go/pkg/shor/modinv"
	"github.com/hsiuhsiu/shor-go/pkg/shor/oracle"
	"github.com/hsiuhsiu/shor-go/pkg/shor/period"
)

// Strategy names the decryption route a Result took.
type Strategy int

const (
	StrategyUnknown Strategy = iota
	StrategyFactoring
	StrategyDirect
)

func (s Strategy) String() string {
	switch s {
	case StrategyFactoring:
		return "factoring"
	case StrategyDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// Result is the outcome of a break. It is returned alongside errors so callers
// can inspect how far the run got.
type Result struct {
	N          int64
	E          int64
	Message    int64 // the plaintext Run encrypted; zero for Factor and Direct
	Ciphertext int64
	Strategy   Strategy
	// Base is the base whose period split N on the factoring path.
	Base     int64
	Period   int64
	Key      shor.KeyMaterial
	Attempts int
	// Recovered is the decrypted plaintext, valid only when the error is nil.
	Recovered int64
}

// Breaker orchestrates period recovery, factoring and inversion.
type Breaker struct {
	engine     *period.Engine
	cfg        shor.Config
	src        shor.Source
	logger     logging.Logger
	engineOpts []period.Option
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithSource sets the randomness used to choose bases. Without it a source
// seeded from the clock is used.
func WithSource(src shor.Source) Option {
	return func(b *Breaker) {
		b.src = src
	}
}

// WithLogger routes trace output to l.
func WithLogger(l logging.Logger) Option {
	return func(b *Breaker) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithEngineOptions passes opts to the period engine.
func WithEngineOptions(opts ...period.Option) Option {
	return func(b *Breaker) {
		b.engineOpts = append(b.engineOpts, opts...)
	}
}

// New returns a Breaker sampling periods from o.
func New(o oracle.Oracle, cfg shor.Config, opts ...Option) (*Breaker, error) {
	if o == nil {
		return nil, shor.Errorf("attack.New", shor.ErrInvalidParameter, "nil oracle")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Breaker{cfg: cfg, logger: logging.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	if b.src == nil {
		b.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	engineOpts := append([]period.Option{period.WithLogger(b.logger)}, b.engineOpts...)
	b.engine = period.New(o, engineOpts...)
	return b, nil
}

// Run encrypts a under (n, c) and recovers it through the strategy selected by
// gcd(n, ciphertext).
func (b *Breaker) Run(ctx context.Context, n, c, a int64) (*Result, error) {
	const op = "attack.Run"
	if err := checkKey(op, n, c); err != nil {
		return nil, err
	}
	if a < 0 || a >= n {
		return nil, shor.Errorf(op, shor.ErrInvalidParameter, "message %d outside [0, %d)", a, n)
	}
	ct := modarith.Exp(a, c, n)
	b.logger.Info(ctx, "rsa instance", "n", n, "c", c, "a", a)
	b.logger.Info(ctx, "ciphertext", "b", ct)

	var (
		res *Result
		err error
	)
	if modarith.GCD(n, ct) == 1 {
		res, err = b.Factor(ctx, n, c, ct)
	} else {
		res, err = b.Direct(ctx, n, c, ct)
	}
	if res != nil {
		res.Message = a
	}
	return res, err
}

// Factor runs the factoring strategy on ciphertext ct.
func (b *Breaker) Factor(ctx context.Context, n, c, ct int64) (*Result, error) {
	const op = "attack.Factor"
	if err := checkKey(op, n, c); err != nil {
		return nil, err
	}
	res := &Result{N: n, E: c, Ciphertext: ct, Strategy: StrategyFactoring}

	var lastErr error
	for attempt := 0; attempt < b.cfg.Attempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			return res, shor.Wrap(op, err)
		}
		res.Attempts++
		lastErr = b.factorOnce(ctx, res)
		if lastErr == nil {
			break
		}
		if !retryable(lastErr) {
			return res, lastErr
		}
		b.logger.Warn(ctx, "base rejected", "attempt", res.Attempts, "base", res.Base, "err", lastErr)
	}
	if lastErr != nil {
		return res, lastErr
	}
	return res, b.decrypt(ctx, op, res, c, (res.Key.P-1)*(res.Key.Q-1))
}

// factorOnce tries one random base and fills res.Key.P and res.Key.Q.
func (b *Breaker) factorOnce(ctx context.Context, res *Result) error {
	const op = "attack.Factor"
	n := res.N
	r0 := b.src.Int63n(n)
	res.Base, res.Period = r0, 0
	b.logger.Info(ctx, "base chosen", "attempt", res.Attempts, "base", r0)

	if r0 == 0 {
		return shor.Errorf(op, shor.ErrPeriodNotFound, "base 0 has no period")
	}
	if g := modarith.GCD(r0, n); g != 1 {
		// The base itself shares a factor with n.
		return b.setFactors(ctx, op, res, g, n/g)
	}

	r, err := b.engine.Recover(ctx, n, r0)
	if err != nil {
		return err
	}
	res.Period = r
	b.logger.Info(ctx, "period", "base", r0, "r", r)
	if r%2 != 0 {
		return shor.Errorf(op, shor.ErrOddPeriod, "base %d has period %d", r0, r)
	}

	x := b.engine.Pow(n, r0, r/2)
	p := modarith.GCD(n, x-1)
	q := modarith.GCD(n, x+1)
	b.logger.Debug(ctx, "half power", "base", r0, "x", x)
	return b.setFactors(ctx, op, res, p, q)
}

func (b *Breaker) setFactors(ctx context.Context, op string, res *Result, p, q int64) error {
	n := res.N
	if p <= 1 || q <= 1 || p >= n || q >= n || p*q != n {
		return shor.Errorf(op, shor.ErrDegenerateFactor, "p=%d q=%d n=%d", p, q, n)
	}
	res.Key.P, res.Key.Q = p, q
	b.logger.Info(ctx, "factors", "p", p, "q", q)
	return nil
}

// Direct runs the direct strategy on ciphertext ct. A ciphertext sharing a
// factor with n splits n through that factor; a unit ciphertext is decrypted
// through its own order.
func (b *Breaker) Direct(ctx context.Context, n, c, ct int64) (*Result, error) {
	const op = "attack.Direct"
	if err := checkKey(op, n, c); err != nil {
		return nil, err
	}
	ct = modarith.Mod(ct, n)
	res := &Result{N: n, E: c, Ciphertext: ct, Strategy: StrategyDirect, Attempts: 1}

	switch g := modarith.GCD(n, ct); {
	case g == n:
		// Only zero encrypts to zero modulo a squarefree n.
		b.logger.Info(ctx, "zero ciphertext")
		res.Recovered = 0
		return res, nil
	case g != 1:
		if err := b.setFactors(ctx, op, res, g, n/g); err != nil {
			return res, err
		}
		return res, b.decrypt(ctx, op, res, c, (res.Key.P-1)*(res.Key.Q-1))
	}

	r, err := b.engine.Recover(ctx, n, ct)
	if err != nil {
		return res, err
	}
	res.Period = r
	b.logger.Info(ctx, "period", "base", ct, "r", r)
	return res, b.decrypt(ctx, op, res, c, r)
}

// decrypt inverts c modulo order and fills res.Key and res.Recovered.
func (b *Breaker) decrypt(ctx context.Context, op string, res *Result, c, order int64) error {
	d, err := modinv.Inverse(c, order)
	if err != nil {
		return shor.Wrap(op, err)
	}
	res.Key.D, res.Key.Order = d, order
	if b.cfg.RedactExponent {
		b.logger.Info(ctx, "private exponent", logging.Redacted("d"), "order", order)
	} else {
		b.logger.Info(ctx, "private exponent", "d", d, "order", order)
	}
	res.Recovered = modarith.Exp(res.Ciphertext, d, res.N)
	b.logger.Info(ctx, "message recovered", "strategy", res.Strategy.String())
	return nil
}

func checkKey(op string, n, c int64) error {
	if err := shor.CheckModulus(op, n); err != nil {
		return err
	}
	if c < 1 {
		return shor.Errorf(op, shor.ErrInvalidParameter, "exponent %d", c)
	}
	return nil
}

func retryable(err error) bool {
	return errors.Is(err, shor.ErrPeriodNotFound) ||
		errors.Is(err, shor.ErrOddPeriod) ||
		errors.Is(err, shor.ErrDegenerateFactor)
}
