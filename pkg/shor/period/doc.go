// Package period turns oracle samples into validated periods of a^x mod N.
//
// One Recover call samples the oracle once, decodes the measurement with
// contfrac.Approximate using the oracle's register size as the denominator
// bound, and checks the candidate r by computing a^r mod N. A candidate that
// fails is retried as r*2, r*3, ... up to ceil(sqrt(N))+1, since a measurement
// near k/r with gcd(k, r) > 1 decodes to a proper divisor of the order.
//
// The engine never returns an unvalidated period. When every multiple fails it
// reports shor.ErrPeriodNotFound and leaves choosing another base to the
// caller.
package period
