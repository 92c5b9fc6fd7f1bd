// Package curve adapts github.com/consensys/gnark-crypto's BLS12-381
// implementation to the uniform field/group/pairing/MSM surface the rest
// of the engine depends on. Apart from the transcript package (fiat-shamir)
// and the cmd/dagrid driver (fr/fft), nothing outside this package imports
// gnark-crypto directly.
package curve

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"
)

// ErrScalarsExceedBasis is returned by MsmG1/MsmG2 when more scalars are
// given than there are basis points to multiply them against: silently
// truncating to the available basis would drop high-order terms rather
// than signal the caller's basis is too small.
var ErrScalarsExceedBasis = fmt.Errorf("pmp/curve: more scalars than basis points")

// Fr is the curve's prime scalar field element.
type Fr = fr.Element

// G1Point and G2Point are the affine points of the two source groups of
// the BLS12-381 pairing. All persisted public values are affine; any
// Jacobian intermediates stay internal to this package.
type G1Point = bls12381.G1Affine
type G2Point = bls12381.G2Affine

// FieldSize is the canonical encoded size, in bytes, of a scalar field
// element: ceil(log2(r)/8) for BLS12-381's scalar field.
const FieldSize = fr.Bytes

// msmParallelThreshold mirrors the teacher's Commit: above this many CPUs it's
// worth splitting a large MSM across two goroutines instead of leaving it
// to gnark-crypto's own internal parallelism alone.
const msmParallelThreshold = 16

// Generators returns the standard G1 and G2 generators used throughout the
// engine.
func Generators() (G1Point, G2Point) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}

// MsmG1 computes the multi-scalar multiplication sum(scalars[i]*points[i])
// in G1, returned as an affine point.
func MsmG1(points []G1Point, scalars []Fr) (G1Point, error) {
	var res G1Point
	if len(scalars) == 0 {
		return res, nil
	}
	if len(scalars) > len(points) {
		return res, ErrScalarsExceedBasis
	}
	n := len(scalars)
	config := ecc.MultiExpConfig{}
	if runtime.NumCPU() > msmParallelThreshold && n > (1<<14) {
		return msmG1Split(points[:n], scalars[:n], config)
	}
	if _, err := res.MultiExp(points[:n], scalars[:n], config); err != nil {
		return res, err
	}
	return res, nil
}

func msmG1Split(points []G1Point, scalars []Fr, config ecc.MultiExpConfig) (G1Point, error) {
	m := len(scalars) / 2
	var p1, p2 bls12381.G1Jac
	var g errgroup.Group
	g.Go(func() error {
		_, err := p1.MultiExp(points[:m], scalars[:m], config)
		return err
	})
	g.Go(func() error {
		_, err := p2.MultiExp(points[m:], scalars[m:], config)
		return err
	})
	if err := g.Wait(); err != nil {
		var zero G1Point
		return zero, err
	}
	p1.AddAssign(&p2)
	var res G1Point
	res.FromJacobian(&p1)
	return res, nil
}

// MsmG2 computes the multi-scalar multiplication sum(scalars[i]*points[i])
// in G2, returned as an affine point.
func MsmG2(points []G2Point, scalars []Fr) (G2Point, error) {
	var res G2Point
	if len(scalars) == 0 {
		return res, nil
	}
	if len(scalars) > len(points) {
		return res, ErrScalarsExceedBasis
	}
	if _, err := res.MultiExp(points[:len(scalars)], scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	return res, nil
}

// PairingCheck reports whether prod_i e(g1s[i], g2s[i]) == 1 in G_T.
func PairingCheck(g1s []G1Point, g2s []G2Point) (bool, error) {
	return bls12381.PairingCheck(g1s, g2s)
}

// PairingsEqual reports whether e(a1, a2) == e(b1, b2), by negating a1 and
// checking the product pairs to the identity.
func PairingsEqual(a1 G1Point, a2 G2Point, b1 G1Point, b2 G2Point) (bool, error) {
	var negA1 G1Point
	negA1.Neg(&a1)
	return PairingCheck([]G1Point{negA1, b1}, []G2Point{a2, b2})
}

// G1ScalarMul computes scalar*point in G1.
func G1ScalarMul(point G1Point, scalar *Fr) G1Point {
	var res G1Point
	var b big.Int
	scalar.BigInt(&b)
	res.ScalarMultiplication(&point, &b)
	return res
}

// G2ScalarMul computes scalar*point in G2.
func G2ScalarMul(point G2Point, scalar *Fr) G2Point {
	var res G2Point
	var b big.Int
	scalar.BigInt(&b)
	res.ScalarMultiplication(&point, &b)
	return res
}
