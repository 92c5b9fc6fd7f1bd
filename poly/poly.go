// Package poly is the shared numerical kernel: power sequences, linear
// combinations, vanishing polynomials, and polynomial long division.
// Coefficients are stored low-degree first; all operations are
// deterministic and tolerate trailing-zero coefficient vectors.
package poly

import (
	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
)

// Polynomial is a coefficient vector, low-degree first. The empty slice
// denotes the zero polynomial.
type Polynomial = []curve.Fr

// Degree returns the index of the highest non-zero coefficient, or -1 for
// the zero polynomial (including an empty slice or an all-zero slice).
func Degree(p Polynomial) int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Evaluate computes p(x) via Horner's method.
func Evaluate(p Polynomial, x *curve.Fr) curve.Fr {
	var y curve.Fr
	for i := len(p) - 1; i >= 0; i-- {
		y.Mul(&y, x).Add(&y, &p[i])
	}
	return y
}

// GenPowers returns [1, y, y^2, ..., y^(n-1)]. For n=0 it returns an empty
// slice.
func GenPowers(y curve.Fr, n int) []curve.Fr {
	out := make([]curve.Fr, n)
	if n == 0 {
		return out
	}
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &y)
	}
	return out
}

// LinearCombination returns sum_i scalars[i]*polys[i], as a coefficient
// vector of length max_i len(polys[i]). Trailing zeros are not trimmed.
// len(polys) must be <= len(scalars); it is an error for polys to be
// empty.
func LinearCombination(polys []Polynomial, scalars []curve.Fr) (Polynomial, error) {
	if len(polys) == 0 {
		return nil, errs.ErrNoPolynomialsGiven
	}
	maxLen := 0
	for _, p := range polys {
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}
	out := make(Polynomial, maxLen)
	var tmp curve.Fr
	for i, p := range polys {
		s := scalars[i]
		for j := range p {
			tmp.Mul(&p[j], &s)
			out[j].Add(&out[j], &tmp)
		}
	}
	return out, nil
}

// VanishingPolynomial returns the monic polynomial prod_i (X - s_i). For an
// empty point set it returns [1].
func VanishingPolynomial(points []curve.Fr) Polynomial {
	out := make(Polynomial, 1, len(points)+1)
	out[0].SetOne()
	for _, s := range points {
		out = multiplyLinearFactor(out, s)
	}
	return out
}

// multiplyLinearFactor computes f <- f*(X - a), growing f by one
// coefficient. f's backing array is reused where capacity allows.
func multiplyLinearFactor(f Polynomial, a curve.Fr) Polynomial {
	n := len(f)
	f = append(f, curve.Fr{})
	var tmp curve.Fr
	for i := n; i >= 1; i-- {
		tmp.Mul(&f[i], &a)
		f[i].Sub(&f[i-1], &tmp)
	}
	f[0].Mul(&f[0], &a).Neg(&f[0])
	return f
}

// Equal compares two coefficient vectors up to trailing zeros.
func Equal(a, b Polynomial) bool {
	da, db := Degree(a), Degree(b)
	if da != db {
		return false
	}
	for i := 0; i <= da; i++ {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// PolyDivQR divides a by b, returning quotient q and remainder r such that
// a = q*b + r and deg(r) < deg(b). b must not be the zero polynomial.
func PolyDivQR(a, b Polynomial) (q, r Polynomial, err error) {
	degB := Degree(b)
	if degB < 0 {
		return nil, nil, errs.ErrDivisorIsZero
	}
	degA := Degree(a)
	if degA < degB {
		r = make(Polynomial, degB)
		copy(r, a)
		return Polynomial{}, r, nil
	}

	remainder := make(Polynomial, degA+1)
	copy(remainder, a[:degA+1])
	quotient := make(Polynomial, degA-degB+1)

	var lead, factor curve.Fr
	lead.Inverse(&b[degB])
	for deg := degA; deg >= degB; deg-- {
		coeff := remainder[deg]
		if coeff.IsZero() {
			continue
		}
		factor.Mul(&coeff, &lead)
		quotient[deg-degB] = factor
		var term curve.Fr
		for j := 0; j <= degB; j++ {
			term.Mul(&factor, &b[j])
			remainder[deg-degB+j].Sub(&remainder[deg-degB+j], &term)
		}
	}

	return quotient, remainder[:degB], nil
}
