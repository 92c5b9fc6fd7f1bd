// Package method2 implements the two-message multi-proof scheme: an extra
// transcript challenge z lets the verifier collapse the pairing check to
// two G1 elements (W1, W2) without needing the full G2 power tower Method-1
// requires, only [1]_2 and [x]_2.
package method2

import (
	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
	"github.com/ahralabs/pmp-go/kzg"
	"github.com/ahralabs/pmp-go/lagrange"
	"github.com/ahralabs/pmp-go/poly"
	"github.com/ahralabs/pmp-go/transcript"
)

const (
	challengeGamma = "open gamma"
	challengeZ     = "open z"
)

// Commitment is a single G1 affine point, equal to [poly(x)]_1.
type Commitment = curve.G1Point

// Proof is a Method-2 opening proof: the pair (W1, W2).
type Proof struct {
	W1 curve.G1Point
	W2 curve.G1Point
}

// Setup holds only what Method-2 needs: the full G1 power tower, plus
// [1]_2 and [x]_2.
type Setup struct {
	PowersOfG1 []curve.G1Point
	G2         curve.G2Point
	G2X        curve.G2Point
}

// FromKZGSetup adapts a general KZG setup into a Method-2 setup. The
// setup must carry at least two G2 powers ([1]_2 and [x]_2).
func FromKZGSetup(s *kzg.Setup) (*Setup, error) {
	if len(s.PowersOfG2) < 2 {
		return nil, errs.ErrNotEnoughG2Powers
	}
	return &Setup{
		PowersOfG1: s.PowersOfG1,
		G2:         s.PowersOfG2[0],
		G2X:        s.PowersOfG2[1],
	}, nil
}

// Prover is the Method-2 prover/verifier.
type Prover struct {
	setup *Setup
}

// New wraps a Method-2 setup.
func New(setup *Setup) *Prover {
	return &Prover{setup: setup}
}

// Commit returns [f(x)]_1.
func (p *Prover) Commit(f poly.Polynomial) (Commitment, error) {
	if len(f) > len(p.setup.PowersOfG1) {
		return Commitment{}, &errs.PolynomialTooLargeError{NCoeffs: len(f), ExpectedMax: len(p.setup.PowersOfG1)}
	}
	return curve.MsmG1(p.setup.PowersOfG1, f)
}

// Open produces a Method-2 proof that polys[i] evaluates to E[i][k] at
// S[k], for every i and k.
func (p *Prover) Open(t *transcript.Transcript, evals [][]curve.Fr, polys []poly.Polynomial, points []curve.Fr) (Proof, error) {
	for _, pl := range polys {
		if len(pl) > len(p.setup.PowersOfG1) {
			return Proof{}, &errs.PolynomialTooLargeError{NCoeffs: len(pl), ExpectedMax: len(p.setup.PowersOfG1)}
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

	gammaPowers := poly.GenPowers(gamma, len(polys))
	f, err := poly.LinearCombination(polys, gammaPowers)
	if err != nil {
		return Proof{}, err
	}

	zS := poly.VanishingPolynomial(points)
	h, rTilde, err := poly.PolyDivQR(f, zS)
	if err != nil {
		return Proof{}, err
	}

	w1, err := curve.MsmG1(p.setup.PowersOfG1, h)
	if err != nil {
		return Proof{}, err
	}

	if err := t.AppendG1(challengeZ, "open W", &w1); err != nil {
		return Proof{}, err
	}
	z, err := t.Challenge(challengeZ)
	if err != nil {
		return Proof{}, err
	}

	// gammaRZ = (rTilde * Z_S)(z) = rTilde(z) * Z_S(z): evaluation is a
	// ring homomorphism, so this avoids the full polynomial multiply.
	rTildeZ := poly.Evaluate(rTilde, &z)
	zSz := poly.Evaluate(zS, &z)
	var gammaRZ curve.Fr
	gammaRZ.Mul(&rTildeZ, &zSz)

	// L(X) = F(X) - gammaRZ - h(X)*zSz
	l := make(poly.Polynomial, len(f))
	copy(l, f)
	l[0].Sub(&l[0], &gammaRZ)
	var term curve.Fr
	for i := range h {
		term.Mul(&h[i], &zSz)
		l[i].Sub(&l[i], &term)
	}

	var one curve.Fr
	one.SetOne()
	xMinusZ := poly.Polynomial{negate(z), one}
	lQuotient, _, err := poly.PolyDivQR(l, xMinusZ)
	if err != nil {
		return Proof{}, err
	}

	w2, err := curve.MsmG1(p.setup.PowersOfG1, lQuotient)
	if err != nil {
		return Proof{}, err
	}

	return Proof{W1: w1, W2: w2}, nil
}

// Verify checks a Method-2 proof against the given commitments, point set
// and claimed evaluation table. A cryptographic mismatch is reported as
// (false, nil), never as an error.
func (p *Prover) Verify(t *transcript.Transcript, commits []Commitment, points []curve.Fr, evals [][]curve.Fr, proof Proof) (bool, error) {
	if err := transcript.TranscribePointsAndEvals(t, challengeGamma, points, evals); err != nil {
		return false, err
	}
	gamma, err := t.Challenge(challengeGamma)
	if err != nil {
		return false, err
	}
	if err := t.AppendG1(challengeZ, "open W", &proof.W1); err != nil {
		return false, err
	}
	z, err := t.Challenge(challengeZ)
	if err != nil {
		return false, err
	}

	zS := poly.VanishingPolynomial(points)
	zSz := poly.Evaluate(zS, &z)

	ctx, err := lagrange.NewContext(points)
	if err != nil {
		return false, err
	}
	gammaPowers := poly.GenPowers(gamma, len(evals))
	r, err := ctx.LagrangeInterpLinearCombo(evals, gammaPowers)
	if err != nil {
		return false, err
	}
	rz := poly.Evaluate(r, &z)
	rzPoint := curve.G1ScalarMul(p.setup.PowersOfG1[0], &rz)

	gammaCommit, err := curve.MsmG1(commits, gammaPowers)
	if err != nil {
		return false, err
	}

	zSzW1 := curve.G1ScalarMul(proof.W1, &zSz)

	var lhs curve.G1Point
	lhs.Sub(&gammaCommit, &rzPoint)
	lhs.Sub(&lhs, &zSzW1)

	zG2 := curve.G2ScalarMul(p.setup.G2, &z)
	var xMinusZG2 curve.G2Point
	xMinusZG2.Sub(&p.setup.G2X, &zG2)

	ok, err := curve.PairingsEqual(lhs, p.setup.G2, proof.W2, xMinusZG2)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func negate(x curve.Fr) curve.Fr {
	var out curve.Fr
	out.Neg(&x)
	return out
}
