// Package precompute is the precomputed variant of Method-1: it amortizes
// the Lagrange context and the G2 vanishing-point commitment across many
// openings against a fixed family of point sets, the pattern an erasure
// -coded data-availability grid repeats for every cell in a column chunk.
package precompute

import (
	"golang.org/x/exp/slices"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
	"github.com/ahralabs/pmp-go/lagrange"
	"github.com/ahralabs/pmp-go/method1"
	"github.com/ahralabs/pmp-go/poly"
	"github.com/ahralabs/pmp-go/transcript"
)

// entry is one registered point set's precomputed material.
type entry struct {
	points  []curve.Fr
	ctx     *lagrange.Context
	zInG2   curve.G2Point
	zCoeffs poly.Polynomial // Z_{S_k}(X) in coefficient form, re-derivable but cached for the prover
}

// Table is an indexed list of (S_k, LagrangeContext(S_k), [Z_{S_k}(x)]_2)
// triples, read-only after construction.
type Table struct {
	base    *method1.NoPrecomp
	entries []entry
}

// NewTable registers every point set in pointSets against base, computing
// each point set's Lagrange context and its vanishing polynomial's G2
// commitment once. Every point set must have size <= base.Setup().MaxPoints().
func NewTable(base *method1.NoPrecomp, pointSets [][]curve.Fr) (*Table, error) {
	maxPts := base.Setup().MaxPoints()
	entries := make([]entry, len(pointSets))
	for k, points := range pointSets {
		if len(points) > maxPts {
			return nil, &errs.PolynomialTooLargeError{NCoeffs: len(points), ExpectedMax: maxPts}
		}
		ctx, err := lagrange.NewContext(points)
		if err != nil {
			return nil, err
		}
		zCoeffs := poly.VanishingPolynomial(points)
		zInG2, err := curve.MsmG2(base.Setup().PowersOfG2, zCoeffs)
		if err != nil {
			return nil, err
		}
		entries[k] = entry{
			points:  slices.Clone(points),
			ctx:     ctx,
			zInG2:   zInG2,
			zCoeffs: zCoeffs,
		}
	}
	return &Table{base: base, entries: entries}, nil
}

// Len returns the number of registered point sets.
func (t *Table) Len() int {
	return len(t.entries)
}

// PointSet returns the point set registered at index k.
func (t *Table) PointSet(k int) ([]curve.Fr, error) {
	e, err := t.entryAt(k)
	if err != nil {
		return nil, err
	}
	return slices.Clone(e.points), nil
}

func (t *Table) entryAt(k int) (*entry, error) {
	if k < 0 || k >= len(t.entries) {
		return nil, &errs.NoSuchPointSetError{Index: k}
	}
	return &t.entries[k], nil
}

// Commit delegates to the underlying Method-1 commitment.
func (t *Table) Commit(p poly.Polynomial) (method1.Commitment, error) {
	return t.base.Commit(p)
}

// Open selects S_k by index and runs the Method-1 open against it, using
// the coefficient-form Z_{S_k}(X) cached in the entry instead of
// re-deriving it from the point set.
func (t *Table) Open(tr *transcript.Transcript, evals [][]curve.Fr, polys []poly.Polynomial, k int) (method1.Proof, error) {
	e, err := t.entryAt(k)
	if err != nil {
		return method1.Proof{}, err
	}
	return t.base.OpenWithVanishing(tr, evals, polys, e.points, e.zCoeffs)
}

// Verify selects S_k by index and runs the Method-1 verify using the
// cached Lagrange context and cached [Z_{S_k}(x)]_2, skipping both the
// Lagrange construction and the G2 MSM that dominate verifier cost in
// unprecomputed mode.
func (t *Table) Verify(tr *transcript.Transcript, commits []method1.Commitment, k int, evals [][]curve.Fr, proof method1.Proof) (bool, error) {
	e, err := t.entryAt(k)
	if err != nil {
		return false, err
	}
	return t.base.VerifyWithContext(tr, commits, e.points, evals, proof, e.ctx, e.zInG2)
}
