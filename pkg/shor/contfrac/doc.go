// Package contfrac recovers a small-denominator rational from a measured
// fraction using its continued-fraction expansion.
//
// Given a measurement num/den and a denominator bound max, Approximate walks
// the convergents h_k/k_k of num/den, keeping the last one whose denominator
// does not exceed max, and stops as soon as
//
//	|h_k/k_k - num/den| <= 1/(2*max)
//
// When the true rational has denominator at most sqrt(max) this is the
// convergent equal to it. Remainders are kept as exact integer fractions.
package contfrac
