package poly_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/poly"
)

func fr(v int64) curve.Fr {
	var e curve.Fr
	e.SetInt64(v)
	return e
}

func TestEvaluateHorner(t *testing.T) {
	// p(X) = 1 + 2X + 3X^2, p(2) = 1 + 4 + 12 = 17
	p := poly.Polynomial{fr(1), fr(2), fr(3)}
	x := fr(2)
	got := poly.Evaluate(p, &x)
	require.True(t, got.Equal(func() *curve.Fr { e := fr(17); return &e }()))
}

func TestGenPowers(t *testing.T) {
	y := fr(3)
	got := poly.GenPowers(y, 4)
	want := []int64{1, 3, 9, 27}
	require.Len(t, got, 4)
	for i, w := range want {
		e := fr(w)
		require.True(t, got[i].Equal(&e), "power %d", i)
	}
}

func TestGenPowersZero(t *testing.T) {
	require.Empty(t, poly.GenPowers(fr(5), 0))
}

func TestLinearCombination(t *testing.T) {
	a := poly.Polynomial{fr(1), fr(2)}
	b := poly.Polynomial{fr(10), fr(20), fr(30)}
	out, err := poly.LinearCombination([]poly.Polynomial{a, b}, []curve.Fr{fr(1), fr(1)})
	require.NoError(t, err)
	require.True(t, poly.Equal(out, poly.Polynomial{fr(11), fr(22), fr(30)}))
}

func TestLinearCombinationIdentityScalar(t *testing.T) {
	a := poly.Polynomial{fr(5), fr(6), fr(7)}
	out, err := poly.LinearCombination([]poly.Polynomial{a}, []curve.Fr{fr(1)})
	require.NoError(t, err)
	require.True(t, poly.Equal(out, a))
}

func TestLinearCombinationEmpty(t *testing.T) {
	_, err := poly.LinearCombination(nil, nil)
	require.Error(t, err)
}

func TestVanishingPolynomialRoots(t *testing.T) {
	points := []curve.Fr{fr(1), fr(2), fr(3)}
	z := poly.VanishingPolynomial(points)
	for _, p := range points {
		p := p
		y := poly.Evaluate(z, &p)
		require.True(t, y.IsZero())
	}
	nonRoot := fr(4)
	y := poly.Evaluate(z, &nonRoot)
	require.False(t, y.IsZero())
}

func TestVanishingPolynomialEmpty(t *testing.T) {
	z := poly.VanishingPolynomial(nil)
	require.True(t, poly.Equal(z, poly.Polynomial{fr(1)}))
}

func TestPolyDivQRRoundTrip(t *testing.T) {
	// a = q*b + r, reconstruct a and check.
	q := poly.Polynomial{fr(1), fr(1)}    // 1 + X
	b := poly.Polynomial{fr(-2), fr(1)}   // X - 2
	r := poly.Polynomial{fr(7)}           // constant remainder
	prod, err := poly.LinearCombination([]poly.Polynomial{mul(q, b)}, []curve.Fr{fr(1)})
	require.NoError(t, err)
	a, err := poly.LinearCombination([]poly.Polynomial{prod, r}, []curve.Fr{fr(1), fr(1)})
	require.NoError(t, err)

	gotQ, gotR, err := poly.PolyDivQR(a, b)
	require.NoError(t, err)
	require.True(t, poly.Equal(gotQ, q))
	require.True(t, poly.Equal(gotR, r))
}

func TestPolyDivQRDivisorZero(t *testing.T) {
	_, _, err := poly.PolyDivQR(poly.Polynomial{fr(1)}, poly.Polynomial{})
	require.Error(t, err)
}

func TestPolyDivQRShortCircuit(t *testing.T) {
	a := poly.Polynomial{fr(1)}
	b := poly.Polynomial{fr(0), fr(0), fr(1)} // X^2
	q, r, err := poly.PolyDivQR(a, b)
	require.NoError(t, err)
	require.Equal(t, -1, poly.Degree(q))
	require.True(t, poly.Equal(r, a))
}

// mul multiplies two small polynomials the naive way, for building test
// fixtures only.
func mul(a, b poly.Polynomial) poly.Polynomial {
	out := make(poly.Polynomial, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			var tmp curve.Fr
			tmp.Mul(&a[i], &b[j])
			out[i+j].Add(&out[i+j], &tmp)
		}
	}
	return out
}
