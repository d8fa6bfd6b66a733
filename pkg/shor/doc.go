// Package shor holds the shared vocabulary of the classical half of a
// period-finding RSA break: measurements, convergents, recovered key material,
// the sentinel errors every stage reports, and the run configuration.
//
// The arithmetic lives in subpackages:
//
//   - contfrac turns a measurement into a small-denominator convergent
//   - modinv computes modular inverses with a swap-based extended Euclid
//   - period recovers and validates the order of a base modulo N
//   - attack orchestrates the factoring and direct decryption strategies
//   - oracle defines the sampling collaborator and classical stand-ins for it
//
// A typical run wires an oracle into a Breaker:
//
//	o := oracle.NewExact(nil)
//	b, err := attack.New(o, shor.DefaultConfig(), attack.WithSource(rand.New(rand.NewSource(1))))
//	if err != nil {
//	    return err
//	}
//	res, err := b.Run(ctx, 55, 17, 9)
//	if errors.Is(err, shor.ErrOddPeriod) {
//	    // pick a new seed and try again
//	}
//
// Moduli are restricted to [3, 2^31) so that the oracle register size
// 2^(2*ceil(log2 N)) and every intermediate product fit in 64 bits.
package shor
