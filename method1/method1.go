// Package method1 implements the no-precompute, single-pairing multi-proof
// scheme: a commitment to t polynomials, opened simultaneously at a shared
// point set S, verifies with one pairing equation and a proof that is a
// single G1 element.
package method1

import (
	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
	"github.com/ahralabs/pmp-go/kzg"
	"github.com/ahralabs/pmp-go/lagrange"
	"github.com/ahralabs/pmp-go/poly"
	"github.com/ahralabs/pmp-go/transcript"
)

// challengeGamma is the transcript label under which S, E and the gamma
// challenge are bound and derived, matching this engine's wire contract
// ("open gamma").
const challengeGamma = "open gamma"

// Commitment is a single G1 affine point, equal to [poly(x)]_1.
type Commitment = curve.G1Point

// Proof is a Method-1 opening proof: a single G1 affine point.
type Proof struct {
	W curve.G1Point
}

// NoPrecomp is the no-precompute Method-1 prover/verifier, built directly
// on a KZG setup.
type NoPrecomp struct {
	setup *kzg.Setup
}

// New wraps a setup for use with Method-1.
func New(setup *kzg.Setup) *NoPrecomp {
	return &NoPrecomp{setup: setup}
}

// Setup returns the underlying KZG setup.
func (m *NoPrecomp) Setup() *kzg.Setup {
	return m.setup
}

// Commit returns [poly(x)]_1 = MSM(powers_of_g1, poly).
func (m *NoPrecomp) Commit(p poly.Polynomial) (Commitment, error) {
	if len(p) > m.setup.MaxCoeffs() {
		return Commitment{}, &errs.PolynomialTooLargeError{NCoeffs: len(p), ExpectedMax: m.setup.MaxCoeffs()}
	}
	return curve.MsmG1(m.setup.PowersOfG1, p)
}

// Open produces a Method-1 proof that polys[i] evaluates to E[i][k] at
// S[k], for every i and k.
func (m *NoPrecomp) Open(t *transcript.Transcript, evals [][]curve.Fr, polys []poly.Polynomial, points []curve.Fr) (Proof, error) {
	vp := poly.VanishingPolynomial(points)
	return m.OpenWithVanishing(t, evals, polys, points, vp)
}

// OpenWithVanishing is Open with a caller-supplied vanishing polynomial in
// coefficient form, for callers (such as the precomputed variant) that
// already have Z_S(X) cached.
func (m *NoPrecomp) OpenWithVanishing(t *transcript.Transcript, evals [][]curve.Fr, polys []poly.Polynomial, points []curve.Fr, vp poly.Polynomial) (Proof, error) {
	for _, p := range polys {
		if len(p) > m.setup.MaxCoeffs() {
			return Proof{}, &errs.PolynomialTooLargeError{NCoeffs: len(p), ExpectedMax: m.setup.MaxCoeffs()}
		}
	}
	for _, row := range evals {
		if len(row) != len(points) {
			return Proof{}, &errs.EvalsIncorrectSizeError{Expected: len(points), Got: len(row)}
		}
	}
	if err := transcript.TranscribePointsAndEvals(t, challengeGamma, points, evals); err != nil {
		return Proof{}, err
	}
	gamma, err := t.Challenge(challengeGamma)
	if err != nil {
		return Proof{}, err
	}

	// gamma powers are sized to t=len(polys), matching the verifier's
	// len(evals) powers: both sides only ever consume the first t
	// entries, so generating exactly t keeps the two derivations
	// identical instead of generating n and truncating.
	gammaPowers := poly.GenPowers(gamma, len(polys))
	f, err := poly.LinearCombination(polys, gammaPowers)
	if err != nil {
		return Proof{}, err
	}

	q, _, err := poly.PolyDivQR(f, vp)
	if err != nil {
		return Proof{}, err
	}

	w, err := curve.MsmG1(m.setup.PowersOfG1, q)
	if err != nil {
		return Proof{}, err
	}
	return Proof{W: w}, nil
}

// Verify checks a Method-1 proof against the given commitments, point set
// and claimed evaluation table. A cryptographic mismatch is reported as
// (false, nil), never as an error.
func (m *NoPrecomp) Verify(t *transcript.Transcript, commits []Commitment, points []curve.Fr, evals [][]curve.Fr, proof Proof) (bool, error) {
	if len(points) > m.setup.MaxPoints() {
		return false, &errs.PolynomialTooLargeError{NCoeffs: len(points), ExpectedMax: m.setup.MaxPoints()}
	}
	vp := poly.VanishingPolynomial(points)
	g2Zeros, err := curve.MsmG2(m.setup.PowersOfG2, vp)
	if err != nil {
		return false, err
	}
	ctx, err := lagrange.NewContext(points)
	if err != nil {
		return false, err
	}
	return m.VerifyWithContext(t, commits, points, evals, proof, ctx, g2Zeros)
}

// VerifyWithContext runs the Method-1 verification equation using a
// caller-supplied Lagrange context and [Z_S(x)]_2, so the precomputed
// variant can skip rebuilding either.
func (m *NoPrecomp) VerifyWithContext(t *transcript.Transcript, commits []Commitment, points []curve.Fr, evals [][]curve.Fr, proof Proof, ctx *lagrange.Context, g2Zeros curve.G2Point) (bool, error) {
	if len(points) > m.setup.MaxPoints() {
		return false, &errs.PolynomialTooLargeError{NCoeffs: len(points), ExpectedMax: m.setup.MaxPoints()}
	}
	if err := transcript.TranscribePointsAndEvals(t, challengeGamma, points, evals); err != nil {
		return false, err
	}
	gamma, err := t.Challenge(challengeGamma)
	if err != nil {
		return false, err
	}

	gammaPowers := poly.GenPowers(gamma, len(evals))
	r, err := ctx.LagrangeInterpLinearCombo(evals, gammaPowers)
	if err != nil {
		return false, err
	}
	rCommit, err := curve.MsmG1(m.setup.PowersOfG1, r)
	if err != nil {
		return false, err
	}

	gammaCommit, err := curve.MsmG1(commits, gammaPowers)
	if err != nil {
		return false, err
	}

	var lhs curve.G1Point
	lhs.Sub(&gammaCommit, &rCommit)

	g2Gen := m.setup.PowersOfG2[0]
	ok, err := curve.PairingsEqual(lhs, g2Gen, proof.W, g2Zeros)
	if err != nil {
		return false, err
	}
	return ok, nil
}
