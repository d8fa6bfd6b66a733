package shor

// Config carries the knobs of a break run.
type Config struct {
	// BaseAttempts is how many random bases the factoring path tries before
	// reporting failure. Values below 1 are treated as 1, which reports the
	// first odd period or failed period search without retrying.
	BaseAttempts int

	// RedactExponent replaces the recovered private exponent with a redaction
	// placeholder in trace output.
	RedactExponent bool
}

// DefaultConfig returns a single-attempt configuration with tracing in the
// clear.
func DefaultConfig() Config {
	return Config{BaseAttempts: 1}
}

// Attempts returns the effective number of base attempts.
func (c Config) Attempts() int {
	if c.BaseAttempts < 1 {
		return 1
	}
	return c.BaseAttempts
}

// Validate rejects configurations no run can honor.
func (c Config) Validate() error {
	if c.BaseAttempts > MaxBaseAttempts {
		return Errorf("shor.Config", ErrInvalidParameter, "base attempts %d exceeds %d", c.BaseAttempts, MaxBaseAttempts)
	}
	return nil
}

// MaxBaseAttempts caps Config.BaseAttempts.
const MaxBaseAttempts = 1 << 16
