// Package oracle defines the period-sampling collaborator and classical
// stand-ins for it.
//
// A real oracle is a quantum period-finding routine: for a modulus N and base
// a it returns an integer y read from a register of size Q = 2^(2*ceil(log2 N)),
// with y/Q close to k/r for the unknown order r and some k. The classical
// layer only sees the Measurement y/Q and must not rely on anything else.
//
// The stand-ins compute the order directly and are meant for tests, demos and
// small moduli:
//
//   - Exact reports round(k*Q/r)/Q, with k drawn from a Source (k=1 without one)
//   - Scripted replays a fixed list of measurements
//   - Flaky wraps another oracle and zeroes every n-th measurement
//
// None of the stand-ins is safe for concurrent use.
package oracle
