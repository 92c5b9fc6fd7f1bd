// Package lagrange precomputes the barycentric weights of a fixed point
// set and folds evaluation tables into coefficient-form linear
// combinations of Lagrange interpolants.
package lagrange

import (
	"golang.org/x/exp/slices"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
	"github.com/ahralabs/pmp-go/poly"
)

// Context caches, for a fixed point set S of size m, the numerator
// polynomial N_k(X) = prod_{j!=k} (X - s_j) and the inverse denominator
// d_k = (prod_{j!=k} (s_k - s_j))^-1 for each point s_k.
type Context struct {
	points          []curve.Fr
	numerators      []poly.Polynomial
	invDenominators []curve.Fr
}

// NewContext builds a Context from a point set. Distinctness of the points
// is validated here: this is where the PointSet invariant is enforced.
func NewContext(points []curve.Fr) (*Context, error) {
	if err := checkDistinct(points); err != nil {
		return nil, err
	}
	m := len(points)
	ctx := &Context{
		points:          slices.Clone(points),
		numerators:      make([]poly.Polynomial, m),
		invDenominators: make([]curve.Fr, m),
	}
	for k := 0; k < m; k++ {
		others := make([]curve.Fr, 0, m-1)
		others = append(others, points[:k]...)
		others = append(others, points[k+1:]...)
		ctx.numerators[k] = poly.VanishingPolynomial(others)

		var denom curve.Fr
		denom.SetOne()
		var diff curve.Fr
		for _, s := range others {
			diff.Sub(&points[k], &s)
			denom.Mul(&denom, &diff)
		}
		ctx.invDenominators[k].Inverse(&denom)
	}
	return ctx, nil
}

// checkDistinct verifies the points are pairwise distinct using an O(m^2)
// scan for small sets and a map-backed seen-canonical-bytes scan for
// large ones, since grids register point sets in the hundreds.
func checkDistinct(points []curve.Fr) error {
	const smallCutoff = 64
	if len(points) <= smallCutoff {
		for i := 0; i < len(points); i++ {
			for j := i + 1; j < len(points); j++ {
				if points[i].Equal(&points[j]) {
					return errs.ErrDistinctPoints
				}
			}
		}
		return nil
	}

	seen := make(map[[curve.FieldSize]byte]struct{}, len(points))
	for i := range points {
		key := points[i].Bytes()
		if _, ok := seen[key]; ok {
			return errs.ErrDistinctPoints
		}
		seen[key] = struct{}{}
	}
	return nil
}

// LagrangeInterpLinearCombo computes R(X) = sum_i gamma[i]*r_i(X), where
// r_i(X) = sum_k E[i][k]*d_k*N_k(X), computed as
// sum_k (sum_i gamma[i]*E[i][k]) * d_k * N_k(X) so only one
// polynomial-scaled-add per point is performed.
func (c *Context) LagrangeInterpLinearCombo(evals [][]curve.Fr, gamma []curve.Fr) (poly.Polynomial, error) {
	if len(evals) == 0 {
		return nil, errs.ErrNoPolynomialsGiven
	}
	m := len(c.points)
	for _, row := range evals {
		if len(row) != m {
			return nil, &errs.EvalsIncorrectSizeError{Expected: m, Got: len(row)}
		}
	}

	// column sums: sum_i gamma[i]*E[i][k], one per point k.
	colSums := make([]curve.Fr, m)
	var tmp curve.Fr
	for i, row := range evals {
		g := gamma[i]
		for k := 0; k < m; k++ {
			tmp.Mul(&row[k], &g)
			colSums[k].Add(&colSums[k], &tmp)
		}
	}

	out := make(poly.Polynomial, m)
	var scale curve.Fr
	for k := 0; k < m; k++ {
		scale.Mul(&colSums[k], &c.invDenominators[k])
		n := c.numerators[k]
		if len(n) > len(out) {
			grown := make(poly.Polynomial, len(n))
			copy(grown, out)
			out = grown
		}
		for j := range n {
			tmp.Mul(&n[j], &scale)
			out[j].Add(&out[j], &tmp)
		}
	}
	return out, nil
}

// Points returns the point set the context was built from.
func (c *Context) Points() []curve.Fr {
	return slices.Clone(c.points)
}
