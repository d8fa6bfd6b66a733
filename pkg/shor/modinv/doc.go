// Package modinv computes modular inverses with an iterative extended
// Euclidean algorithm.
//
// The algorithm keeps two (coefficient, remainder) pairs, each satisfying
// coefficient*a ≡ remainder (mod b). Whenever the first remainder drops below
// the second, the whole pairs are swapped so the quotient stays non-negative.
// The loop ends when the first remainder reaches zero; an inverse exists iff
// the surviving remainder is 1.
package modinv
