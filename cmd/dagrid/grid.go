package main

import (
	"context"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"golang.org/x/sync/errgroup"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/method1"
	"github.com/ahralabs/pmp-go/poly"
)

// grid holds the erasure-coded evaluation grid, the row polynomials derived
// from it, and a commitment to every row (including the erasure-coded half
// reconstructed without ever committing to it directly).
type grid struct {
	evals   [][]curve.Fr
	polys   []poly.Polynomial
	commits []method1.Commitment
}

// bytesPerField is the largest number of bytes that packs into a scalar
// field element without risking a reduction (one byte of headroom below the
// 32-byte field size, matching the source engine's serialized_size-1 rule).
const bytesPerField = curve.FieldSize - 1

// packDataIntoPoints splits data into bytesPerField-byte chunks, each
// interpreted as a big-endian integer reduced mod the scalar field order.
func packDataIntoPoints(data []byte) []curve.Fr {
	n := (len(data) + bytesPerField - 1) / bytesPerField
	points := make([]curve.Fr, n)
	for i := 0; i < n; i++ {
		start := i * bytesPerField
		end := start + bytesPerField
		if end > len(data) {
			end = len(data)
		}
		points[i].SetBytes(data[start:end])
	}
	return points
}

// buildRows chunks points into gridWidth-wide rows, zero-padding the final
// row, then zero-pads the row count up to domainH's cardinality.
func buildRows(points []curve.Fr, gridWidth int, domainH *fft.Domain) [][]curve.Fr {
	nRows := (len(points) + gridWidth - 1) / gridWidth
	rows := make([][]curve.Fr, nRows)
	for i := 0; i < nRows; i++ {
		row := make([]curve.Fr, gridWidth)
		start := i * gridWidth
		end := start + gridWidth
		if end > len(points) {
			end = len(points)
		}
		copy(row, points[start:end])
		rows[i] = row
	}
	for uint64(len(rows)) < domainH.Cardinality {
		rows = append(rows, make([]curve.Fr, gridWidth))
	}
	return rows
}

// erasureCodeColumn interpolates a column's values over domainH and
// re-evaluates the result over domain2H, doubling the column's length. This
// is the per-column step that lets any GRID_HEIGHT surviving rows out of the
// 2*GRID_HEIGHT extended rows reconstruct the whole column.
func erasureCodeColumn(col []curve.Fr, domainH, domain2H *fft.Domain) []curve.Fr {
	coeffs := make([]curve.Fr, len(col))
	copy(coeffs, col)
	domainH.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)

	extended := make([]curve.Fr, domain2H.Cardinality)
	copy(extended, coeffs)
	domain2H.FFT(extended, fft.DIF)
	fft.BitReverse(extended)
	return extended
}

// erasureCodeColumns runs erasureCodeColumn over every column of rows,
// fanning the gridWidth independent columns out across an errgroup worker
// pool in place of the source engine's rayon par_iter.
func erasureCodeColumns(ctx context.Context, rows [][]curve.Fr, gridWidth int, domainH, domain2H *fft.Domain) ([][]curve.Fr, error) {
	interp := make([][]curve.Fr, domain2H.Cardinality)
	for i := range interp {
		interp[i] = make([]curve.Fr, gridWidth)
	}
	g, _ := errgroup.WithContext(ctx)
	for j := 0; j < gridWidth; j++ {
		j := j
		g.Go(func() error {
			col := make([]curve.Fr, len(rows))
			for i := range rows {
				col[i] = rows[i][j]
			}
			extended := erasureCodeColumn(col, domainH, domain2H)
			for i := range extended {
				interp[i][j] = extended[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return interp, nil
}

// interpolateRowsToPolys converts every row of evaluations (at domainW) into
// its coefficient-form polynomial, in parallel.
func interpolateRowsToPolys(ctx context.Context, rows [][]curve.Fr, domainW *fft.Domain) ([]poly.Polynomial, error) {
	polys := make([]poly.Polynomial, len(rows))
	g, _ := errgroup.WithContext(ctx)
	for i := range rows {
		i := i
		g.Go(func() error {
			coeffs := make([]curve.Fr, len(rows[i]))
			copy(coeffs, rows[i])
			domainW.FFTInverse(coeffs, fft.DIF)
			fft.BitReverse(coeffs)
			polys[i] = coeffs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return polys, nil
}

// lagrangeExtendG1 reconstructs the commitments for the odd (erasure-coded)
// rows from commitments to the even (original) rows alone, applying the same
// interpolate-then-reevaluate linear map erasureCodeColumn applies to field
// elements, but in the exponent via MSM: Commit is Fr-linear, so evaluating
// domainH's Lagrange basis at each domain2H point and taking the matching
// linear combination of commitments is equivalent to committing to the
// extended row polynomials directly, without ever forming them.
func lagrangeExtendG1(commits []method1.Commitment, domainH, domain2H *fft.Domain) ([]method1.Commitment, error) {
	n := curve.Fr{}
	n.SetUint64(domainH.Cardinality)
	var nInv curve.Fr
	nInv.Inverse(&n)

	xs := poly.GenPowers(domainH.Generator, len(commits))
	ys := poly.GenPowers(domain2H.Generator, int(domain2H.Cardinality))

	var one curve.Fr
	one.SetOne()

	out := make([]method1.Commitment, len(ys))
	for k, y := range ys {
		weights := make([]curve.Fr, len(xs))
		var num curve.Fr
		yPow := pow(y, domainH.Cardinality)
		num.Sub(&yPow, &one) // num = y^N - 1, the vanishing polynomial of domainH evaluated at y
		for i, xi := range xs {
			var diff, w curve.Fr
			diff.Sub(&y, &xi)
			if diff.IsZero() {
				// y coincides with a domainH point: the basis collapses to
				// the indicator vector.
				weights = make([]curve.Fr, len(xs))
				weights[i].SetOne()
				break
			}
			w.Inverse(&diff)
			w.Mul(&w, &xi)
			w.Mul(&w, &num)
			w.Mul(&w, &nInv)
			weights[i] = w
		}
		c, err := curve.MsmG1(commits, weights)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

func pow(base curve.Fr, exp uint64) curve.Fr {
	var out curve.Fr
	out.SetOne()
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			out.Mul(&out, &b)
		}
		b.Mul(&b, &b)
		exp >>= 1
	}
	return out
}

// buildGrid packs data into the grid, erasure-codes it column-wise,
// interpolates each row into a polynomial, commits the original half of the
// rows, and reconstructs the rest via lagrangeExtendG1.
func buildGrid(ctx context.Context, data []byte, gridWidth int, committer *method1.NoPrecomp, domainH, domain2H, domainW *fft.Domain) (*grid, error) {
	points := packDataIntoPoints(data)
	rows := buildRows(points, gridWidth, domainH)

	interp, err := erasureCodeColumns(ctx, rows, gridWidth, domainH, domain2H)
	if err != nil {
		return nil, err
	}

	polys, err := interpolateRowsToPolys(ctx, interp, domainW)
	if err != nil {
		return nil, err
	}

	evenCommits := make([]method1.Commitment, domainH.Cardinality)
	g, _ := errgroup.WithContext(ctx)
	for i := range evenCommits {
		i := i
		g.Go(func() error {
			c, err := committer.Commit(polys[2*i])
			if err != nil {
				return err
			}
			evenCommits[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allCommits, err := lagrangeExtendG1(evenCommits, domainH, domain2H)
	if err != nil {
		return nil, err
	}

	return &grid{evals: interp, polys: polys, commits: allCommits}, nil
}
