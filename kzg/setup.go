// Package kzg generates and holds the trusted-setup powers-of-tau that
// every proof scheme in this module is built on.
package kzg

import (
	"github.com/rs/zerolog"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/poly"
)

// Setup stores the powers of a (discarded) secret scalar x in both source
// groups: powers_of_g1[i] = [x^i]_1 for i in [0,n), powers_of_g2[i] =
// [x^i]_2 for i in [0,p]. It is immutable and safe to share across
// parallel callers once constructed.
type Setup struct {
	PowersOfG1 []curve.G1Point
	PowersOfG2 []curve.G2Point
}

// logger defaults to a no-op; library consumers can opt into diagnostics
// with SetLogger without the engine ever writing to stdout/stderr on its
// own.
var logger = zerolog.Nop()

// SetLogger installs a logger used for setup-time diagnostics (setup size
// and curve). The hot paths (commit/open/verify) never log.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// NewSetup samples a uniformly random secret scalar x and returns the
// setup powers_of_g1[0..n) and powers_of_g2[0..p]. x is discarded
// immediately after the powers are derived; it is never retained on the
// returned Setup or anywhere else.
func NewSetup(n, p int) (*Setup, error) {
	var x curve.Fr
	if _, err := x.SetRandom(); err != nil {
		return nil, err
	}
	s, err := newSetupFromSecret(x, n, p)
	// x falls out of scope here; nothing above retains it.
	return s, err
}

func newSetupFromSecret(x curve.Fr, n, p int) (*Setup, error) {
	g1Gen, g2Gen := curve.Generators()

	xPowersG1 := poly.GenPowers(x, n)
	powersG1 := make([]curve.G1Point, n)
	for i := range xPowersG1 {
		powersG1[i] = curve.G1ScalarMul(g1Gen, &xPowersG1[i])
	}

	xPowersG2 := poly.GenPowers(x, p+1)
	powersG2 := make([]curve.G2Point, p+1)
	for i := range xPowersG2 {
		powersG2[i] = curve.G2ScalarMul(g2Gen, &xPowersG2[i])
	}

	logger.Debug().Int("n", n).Int("p", p).Str("curve", "bls12-381").Msg("kzg setup generated")

	return &Setup{PowersOfG1: powersG1, PowersOfG2: powersG2}, nil
}

// Clone returns a cheap copy of the setup (the backing point slices are
// re-sliced, not deep-copied, since Setup is never mutated after
// construction).
func (s *Setup) Clone() *Setup {
	return &Setup{PowersOfG1: s.PowersOfG1, PowersOfG2: s.PowersOfG2}
}

// MaxCoeffs is the largest polynomial length (n) this setup supports for
// commitments.
func (s *Setup) MaxCoeffs() int {
	return len(s.PowersOfG1)
}

// MaxPoints is the largest point-set size (p) this setup supports.
func (s *Setup) MaxPoints() int {
	if len(s.PowersOfG2) == 0 {
		return 0
	}
	return len(s.PowersOfG2) - 1
}
