// Package attack recovers an RSA plaintext from its ciphertext by period
// finding.
//
// Run encrypts the message as b = a^c mod N and selects a strategy from
// gcd(N, b):
//
//   - Factoring (gcd 1): pick a random base r0, recover its period r, and for
//     even r derive p = gcd(N, x-1), q = gcd(N, x+1) from x = r0^(r/2). The
//     private exponent is the inverse of c modulo (p-1)(q-1).
//   - Direct (gcd > 1): the shared factor gcd(N, b) splits N outright. Called
//     on a unit ciphertext, Direct instead recovers the order r of b and
//     inverts c modulo r.
//
// The factoring path tries Config.BaseAttempts bases. With the default of one
// an odd period, failed period search or degenerate factor is reported to the
// caller, who may retry with fresh randomness.
package attack
