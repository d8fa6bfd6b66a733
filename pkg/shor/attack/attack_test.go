package attack_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/attack"
	"github.com/hsiuhsiu/shor-go/pkg/shor/logging"
	"github.com/hsiuhsiu/shor-go/pkg/shor/oracle"
	"github.com/hsiuhsiu/shor-go/pkg/shor/period"
)

// fixedSource replays bases in order, cycling.
type fixedSource struct {
	vals []int64
	next int
}

func (f *fixedSource) Int63n(n int64) int64 {
	v := f.vals[f.next%len(f.vals)]
	f.next++
	return v % n
}

func newBreaker(t *testing.T, o oracle.Oracle, cfg shor.Config, bases ...int64) *attack.Breaker {
	t.Helper()
	b, err := attack.New(o, cfg, attack.WithSource(&fixedSource{vals: bases}))
	require.NoError(t, err)
	return b
}

func TestRunReferenceInstance(t *testing.T) {
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 2)
	res, err := b.Run(context.Background(), 55, 17, 9)
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.Ciphertext)
	assert.Equal(t, attack.StrategyFactoring, res.Strategy)
	assert.Equal(t, int64(2), res.Base)
	assert.Equal(t, int64(20), res.Period)
	assert.ElementsMatch(t, []int64{5, 11}, []int64{res.Key.P, res.Key.Q})
	assert.Equal(t, int64(33), res.Key.D)
	assert.Equal(t, int64(40), res.Key.Order)
	assert.Equal(t, int64(9), res.Message)
	assert.Equal(t, int64(9), res.Recovered)
	assert.Equal(t, 1, res.Attempts)
}

func TestRunEveryGoodBaseSplitsModulus(t *testing.T) {
	for base := int64(2); base < 55; base++ {
		r, err := oracle.Order(55, base)
		if err != nil || r%2 != 0 {
			continue
		}
		if period.New(oracle.NewExact(nil)).Pow(55, base, r/2) == 54 {
			continue
		}
		b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), base)
		res, err := b.Run(context.Background(), 55, 17, 9)
		require.NoError(t, err, "base=%d", base)
		assert.ElementsMatch(t, []int64{5, 11}, []int64{res.Key.P, res.Key.Q}, "base=%d", base)
		assert.Equal(t, int64(9), res.Recovered, "base=%d", base)
	}
}

func TestRunOddPeriodIsNotRetried(t *testing.T) {
	// 16 has order 5 modulo 55.
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 16, 2)
	res, err := b.Run(context.Background(), 55, 17, 9)
	require.ErrorIs(t, err, shor.ErrOddPeriod)
	assert.Equal(t, int64(5), res.Period)
	assert.Equal(t, 1, res.Attempts)
}

func TestRunRetriesBasesWhenConfigured(t *testing.T) {
	cfg := shor.Config{BaseAttempts: 4}
	// 16: odd period, 54: x = -1, 0: no period, 2: good.
	b := newBreaker(t, oracle.NewExact(nil), cfg, 16, 54, 0, 2)
	res, err := b.Run(context.Background(), 55, 17, 9)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Attempts)
	assert.Equal(t, int64(2), res.Base)
	assert.Equal(t, int64(9), res.Recovered)
}

func TestRunDegenerateFactor(t *testing.T) {
	// 54 ≡ -1 has order 2 and 54^1 = -1, so gcd(55, x+1) = 55.
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 54)
	_, err := b.Run(context.Background(), 55, 17, 9)
	assert.ErrorIs(t, err, shor.ErrDegenerateFactor)
}

func TestRunBaseSharingFactor(t *testing.T) {
	b := newBreaker(t, oracle.NewScripted(), shor.DefaultConfig(), 22)
	res, err := b.Run(context.Background(), 55, 17, 9)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{5, 11}, []int64{res.Key.P, res.Key.Q})
	assert.Zero(t, res.Period)
	assert.Equal(t, int64(9), res.Recovered)
}

func TestRunPeriodNotFound(t *testing.T) {
	o := oracle.NewScripted(shor.Measurement{Num: 0, Den: 4096})
	b := newBreaker(t, o, shor.DefaultConfig(), 2)
	_, err := b.Run(context.Background(), 55, 17, 9)
	assert.ErrorIs(t, err, shor.ErrPeriodNotFound)
}

func TestRunOracleErrorStopsRetries(t *testing.T) {
	b := newBreaker(t, oracle.NewScripted(), shor.Config{BaseAttempts: 8}, 2)
	res, err := b.Run(context.Background(), 55, 17, 9)
	require.ErrorIs(t, err, oracle.ErrScriptExhausted)
	assert.Equal(t, 1, res.Attempts)
}

func TestRunInverseNotFound(t *testing.T) {
	// c=5 shares a factor with (5-1)(11-1)=40.
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 2)
	_, err := b.Run(context.Background(), 55, 5, 9)
	assert.ErrorIs(t, err, shor.ErrInverseNotFound)
}

func TestRunAllUnitMessagesWithRandomBases(t *testing.T) {
	src := rand.New(rand.NewSource(2024))
	b, err := attack.New(oracle.NewExact(nil), shor.Config{BaseAttempts: 64}, attack.WithSource(src))
	require.NoError(t, err)
	for a := int64(1); a < 55; a++ {
		if a%5 == 0 || a%11 == 0 {
			continue
		}
		res, err := b.Run(context.Background(), 55, 17, a)
		require.NoError(t, err, "a=%d", a)
		require.Equal(t, a, res.Recovered, "a=%d", a)
	}
}

func TestRunNoisyOracle(t *testing.T) {
	src := rand.New(rand.NewSource(99))
	b, err := attack.New(oracle.NewExact(rand.New(rand.NewSource(3))), shor.Config{BaseAttempts: 128}, attack.WithSource(src))
	require.NoError(t, err)
	for _, a := range []int64{2, 9, 13, 42} {
		res, err := b.Run(context.Background(), 55, 17, a)
		require.NoError(t, err, "a=%d", a)
		assert.Equal(t, a, res.Recovered, "a=%d", a)
	}
}

func TestRunNonUnitMessageTakesDirectPath(t *testing.T) {
	b := newBreaker(t, oracle.NewScripted(), shor.DefaultConfig(), 2)
	for _, a := range []int64{5, 10, 11, 22, 50} {
		res, err := b.Run(context.Background(), 55, 17, a)
		require.NoError(t, err, "a=%d", a)
		assert.Equal(t, attack.StrategyDirect, res.Strategy)
		assert.ElementsMatch(t, []int64{5, 11}, []int64{res.Key.P, res.Key.Q})
		assert.Equal(t, a, res.Recovered, "a=%d", a)
	}

	res, err := b.Run(context.Background(), 55, 17, 0)
	require.NoError(t, err)
	assert.Equal(t, attack.StrategyDirect, res.Strategy)
	assert.Zero(t, res.Recovered)
}

func TestDirectThroughCiphertextOrder(t *testing.T) {
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 2)
	for a := int64(1); a < 55; a++ {
		if a%5 == 0 || a%11 == 0 {
			continue
		}
		ct := period.New(oracle.NewExact(nil)).Pow(55, a, 17)
		res, err := b.Direct(context.Background(), 55, 17, ct)
		require.NoError(t, err, "a=%d", a)
		want, err := oracle.Order(55, ct)
		require.NoError(t, err)
		assert.Equal(t, want, res.Period, "a=%d", a)
		assert.Equal(t, want, res.Key.Order, "a=%d", a)
		assert.Equal(t, int64(1)%want, (17*res.Key.D)%want, "a=%d", a)
		assert.Equal(t, a, res.Recovered, "a=%d", a)
	}
}

func TestRunInvalidInput(t *testing.T) {
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 2)
	ctx := context.Background()
	_, err := b.Run(ctx, 55, 0, 9)
	assert.ErrorIs(t, err, shor.ErrInvalidParameter)
	_, err = b.Run(ctx, 55, 17, 55)
	assert.ErrorIs(t, err, shor.ErrInvalidParameter)
	_, err = b.Run(ctx, 1<<31, 17, 9)
	assert.ErrorIs(t, err, shor.ErrModulusTooLarge)

	_, err = attack.New(nil, shor.DefaultConfig())
	assert.ErrorIs(t, err, shor.ErrInvalidParameter)
	_, err = attack.New(oracle.NewExact(nil), shor.Config{BaseAttempts: shor.MaxBaseAttempts + 1})
	assert.ErrorIs(t, err, shor.ErrInvalidParameter)
}

func TestRunHonorsCanceledContext(t *testing.T) {
	b := newBreaker(t, oracle.NewExact(nil), shor.DefaultConfig(), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Run(ctx, 55, 17, 9)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTraceAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewJSONHandler(&buf, nil)))
	b, err := attack.New(oracle.NewExact(nil), shor.Config{RedactExponent: true},
		attack.WithSource(&fixedSource{vals: []int64{2}}), attack.WithLogger(logger))
	require.NoError(t, err)

	_, err = b.Run(context.Background(), 55, 17, 9)
	require.NoError(t, err)

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		msgs = append(msgs, rec["msg"].(string))
		if rec["msg"] == "private exponent" {
			assert.Equal(t, logging.Placeholder(), rec["d"])
		}
	}
	assert.Contains(t, msgs, "ciphertext")
	assert.Contains(t, msgs, "period recovered")
	assert.Contains(t, msgs, "factors")
	assert.Contains(t, msgs, "private exponent")
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "factoring", attack.StrategyFactoring.String())
	assert.Equal(t, "direct", attack.StrategyDirect.String())
	assert.Equal(t, "unknown", attack.StrategyUnknown.String())
}
