// Package transcript is a thin Fiat-Shamir adapter over
// github.com/consensys/gnark-crypto/fiat-shamir: append labelled bytes,
// derive a field challenge. The engine treats the underlying sponge as
// opaque; this package owns only the byte layout described by the
// external-interfaces section of the spec this engine implements.
package transcript

import (
	"crypto/sha256"
	"hash"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/errs"
)

// Transcript binds labelled byte strings to a named pending challenge and
// derives field-element challenges from them, non-interactively.
type Transcript struct {
	fs *fiatshamir.Transcript
}

// New creates a transcript over a fresh SHA-256 duplex, declaring the
// named challenges that will later be derived with Challenge. Challenge
// names must be declared up front, matching gnark-crypto's own
// fiat-shamir.NewTranscript contract.
func New(challengeNames ...string) *Transcript {
	return NewWithHash(sha256.New, challengeNames...)
}

// NewWithHash is New with an explicit hash constructor, for callers that
// need a non-default duplex.
func NewWithHash(newHash func() hash.Hash, challengeNames ...string) *Transcript {
	return &Transcript{fs: fiatshamir.NewTranscript(newHash(), challengeNames...)}
}

// Append binds label and data to the named pending challenge. The label is
// prefixed into the bound bytes so that distinct append sites never
// collide even when they target the same challenge, matching the
// append(label, bytes) contract.
func (t *Transcript) Append(challenge, label string, data []byte) error {
	bound := make([]byte, 0, len(label)+len(data))
	bound = append(bound, label...)
	bound = append(bound, data...)
	if err := t.fs.Bind(challenge, bound); err != nil {
		return errs.ErrTranscript
	}
	return nil
}

// AppendPoint appends a single scalar field point under the
// "append_point" label.
func (t *Transcript) AppendPoint(challenge string, p *curve.Fr) error {
	return t.Append(challenge, "append_point", LittleEndianBytes(p))
}

// AppendEval appends a single evaluation entry under the "append_eval"
// label.
func (t *Transcript) AppendEval(challenge string, e *curve.Fr) error {
	return t.Append(challenge, "append_eval", LittleEndianBytes(e))
}

// AppendG1 appends the canonical encoding of an affine G1 point under the
// given label (used for Method-2's "open W").
func (t *Transcript) AppendG1(challenge, label string, p *curve.G1Point) error {
	enc := p.Bytes()
	return t.Append(challenge, label, enc[:])
}

// Challenge finalizes and derives the named challenge as a field element,
// sampled from the duplex's squeezed output and reduced modulo the field
// order.
func (t *Transcript) Challenge(challenge string) (curve.Fr, error) {
	var out curve.Fr
	raw, err := t.fs.ComputeChallenge(challenge)
	if err != nil {
		return out, errs.ErrTranscript
	}
	out.SetBytes(raw)
	return out, nil
}

// LittleEndianBytes canonically encodes a scalar field element as exactly
// FieldSize little-endian bytes. gnark-crypto's own Marshal is big-endian,
// so this reverses it; the little-endian convention is this engine's wire
// contract, not gnark-crypto's.
func LittleEndianBytes(e *curve.Fr) []byte {
	be := e.Marshal()
	out := make([]byte, len(be))
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// TranscribePointsAndEvals appends every point in S and every evaluation in
// E, in order, under the given challenge name: first each s_k in S, then
// every entry of E, row by row (no per-row separator), matching the
// external byte layout this engine implements.
func TranscribePointsAndEvals(t *Transcript, challenge string, points []curve.Fr, evals [][]curve.Fr) error {
	for i := range points {
		if err := t.AppendPoint(challenge, &points[i]); err != nil {
			return err
		}
	}
	for i := range evals {
		row := evals[i]
		for k := range row {
			if err := t.AppendEval(challenge, &row[k]); err != nil {
				return err
			}
		}
	}
	return nil
}
