package contfrac

import (
	"math/big"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
)

// Approximate returns the last convergent of num/den with denominator at most
// max, stopping early once a convergent is within 1/(2*max) of num/den. If the
// bound is never met the last accepted convergent is returned anyway.
//
// num must be non-negative and den positive; otherwise, or when max < 1, the
// result is 0/1.
func Approximate(num, den, max int64) shor.Convergent {
	best := shor.Convergent{Num: 0, Den: 1}
	if num < 0 || den <= 0 || max < 1 {
		return best
	}
	walk(num, den, max, func(c shor.Convergent) bool {
		best = c
		return !Within(c, num, den, max)
	})
	return best
}

// Convergents returns every convergent of num/den with denominator at most
// max, in order, without applying the precision stop.
func Convergents(num, den, max int64) []shor.Convergent {
	if num < 0 || den <= 0 || max < 1 {
		return nil
	}
	var out []shor.Convergent
	walk(num, den, max, func(c shor.Convergent) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Expand returns the partial quotients [a0; a1, a2, ...] of num/den.
func Expand(num, den int64) []int64 {
	if num < 0 || den <= 0 {
		return nil
	}
	var terms []int64
	p, q := num, den
	for q != 0 {
		terms = append(terms, p/q)
		p, q = q, p%q
	}
	return terms
}

// Within reports whether |c - num/den| <= 1/(2*max).
func Within(c shor.Convergent, num, den, max int64) bool {
	// 2*max*|c.Num*den - num*c.Den| <= c.Den*den
	diff := new(big.Int).Mul(big.NewInt(c.Num), big.NewInt(den))
	diff.Sub(diff, new(big.Int).Mul(big.NewInt(num), big.NewInt(c.Den)))
	diff.Abs(diff)
	diff.Mul(diff, new(big.Int).Lsh(big.NewInt(max), 1))
	bound := new(big.Int).Mul(big.NewInt(c.Den), big.NewInt(den))
	return diff.Cmp(bound) <= 0
}

// walk feeds each accepted convergent to visit until visit returns false, the
// next denominator would exceed max, or the expansion terminates.
func walk(num, den, max int64, visit func(shor.Convergent) bool) {
	// g = gp/gq is the current remainder.
	gp, gq := num, den
	num1, den1 := int64(1), int64(0)
	num2, den2 := int64(0), int64(1)
	for {
		i := gp / gq
		if den1 != 0 && i > (max-den2)/den1 {
			return
		}
		hk := i*num1 + num2
		kk := i*den1 + den2
		if kk > max {
			return
		}
		if !visit(shor.Convergent{Num: hk, Den: kk}) {
			return
		}
		rem := gp - i*gq
		if rem == 0 {
			// g - i is zero: the expansion is exact.
			return
		}
		gp, gq = gq, rem
		num1, num2 = hk, num1
		den1, den2 = kk, den1
	}
}
