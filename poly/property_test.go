package poly_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/poly"
)

// frGen builds field elements from arbitrary uint64s, giving gopter a cheap
// way to sample small-to-moderate scalars without needing a crypto-random
// source inside a shrinkable generator.
func frGen() gopter.Gen {
	return gen.UInt64().Map(func(v uint64) curve.Fr {
		var e curve.Fr
		e.SetUint64(v)
		return e
	})
}

func polyGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, frGen()).Map(func(coeffs []curve.Fr) poly.Polynomial {
		return poly.Polynomial(coeffs)
	})
}

// TestPolyDivQRIdentity checks a = q*b + r for random dividend/divisor
// pairs, the fundamental correctness property of polynomial long division.
func TestPolyDivQRIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("a == q*b + r", prop.ForAll(
		func(a, b poly.Polynomial) bool {
			if poly.Degree(b) < 0 {
				return true // divisor is zero; division is undefined, skip
			}
			q, r, err := poly.PolyDivQR(a, b)
			if err != nil {
				return false
			}
			reconstructed := addPolys(mulPolys(q, b), r)
			return poly.Equal(reconstructed, a)
		},
		polyGen(6),
		polyGen(4),
	))

	properties.TestingRun(t)
}

func mulPolys(a, b poly.Polynomial) poly.Polynomial {
	if len(a) == 0 || len(b) == 0 {
		return poly.Polynomial{}
	}
	out := make(poly.Polynomial, len(a)+len(b)-1)
	var tmp curve.Fr
	for i := range a {
		for j := range b {
			tmp.Mul(&a[i], &b[j])
			out[i+j].Add(&out[i+j], &tmp)
		}
	}
	return out
}

func addPolys(a, b poly.Polynomial) poly.Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(poly.Polynomial, n)
	copy(out, a)
	for i := range b {
		out[i].Add(&out[i], &b[i])
	}
	return out
}
