// Package logging provides the trace facade used by the break orchestrator
// and the period engine.
//
// Library packages never print. They report intermediate values (modulus,
// ciphertext, attempted bases, recovered periods, factors, exponent) through a
// Logger injected by the caller, and default to Discard when none is given.
//
//	logger := logging.New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//	b, _ := attack.New(o, cfg, attack.WithLogger(logger))
//
// Redacted marks an attribute whose value was deliberately withheld:
//
//	logger.Info(ctx, "private exponent recovered", logging.Redacted("d"))
//	// Logs: d="[redacted]"
//
// Trace output is diagnostic only; nothing in the library branches on it.
package logging
