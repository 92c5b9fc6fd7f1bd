package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/kzg"
	"github.com/ahralabs/pmp-go/method1"
	"github.com/ahralabs/pmp-go/method1/precompute"
	"github.com/ahralabs/pmp-go/poly"
	"github.com/ahralabs/pmp-go/transcript"
)

// buildSmallGrid mirrors run()'s pipeline at dimensions small enough for a
// unit test: an 8-wide, 4-row grid (erasure-coded to 8 rows), split into
// 2 column chunks and 2 row chunks, matching the shape of spec scenario
// 5 ("GRID_WIDTH=256, N_CHUNKS_W=4 ...") at a fraction of the size.
func buildSmallGrid(t *testing.T) (*precompute.Table, *grid, int, int, int, int) {
	t.Helper()
	const (
		gridWidth  = 8
		gridHeight = 4
		nChunksW   = 2
		nChunksH   = 2
	)
	chunkW := gridWidth / nChunksW

	domainW := fft.NewDomain(uint64(gridWidth))
	domainH := fft.NewDomain(uint64(gridHeight))
	domain2H := fft.NewDomain(2 * domainH.Cardinality)

	setup, err := kzg.NewSetup(gridWidth, chunkW)
	require.NoError(t, err)
	base := method1.New(setup)

	widthPoints := poly.GenPowers(domainW.Generator, gridWidth)
	pointSets := make([][]curve.Fr, nChunksW)
	for i, p := range widthPoints {
		k := i / chunkW
		pointSets[k] = append(pointSets[k], p)
	}
	table, err := precompute.NewTable(base, pointSets)
	require.NoError(t, err)

	data := make([]byte, bytesPerField*gridHeight*gridWidth)
	for i := range data {
		data[i] = byte(i)
	}

	g, err := buildGrid(context.Background(), data, gridWidth, base, domainH, domain2H, domainW)
	require.NoError(t, err)

	chunkH := len(g.evals) / nChunksH
	require.NotZero(t, chunkH)
	return table, g, chunkH, chunkW, nChunksH, nChunksW
}

func TestGridOpenVerifyRoundTrip(t *testing.T) {
	table, g, chunkH, chunkW, nChunksH, nChunksW := buildSmallGrid(t)

	cells, err := openGrid(context.Background(), table, g, chunkH, chunkW, nChunksH, nChunksW)
	require.NoError(t, err)
	require.Len(t, cells, nChunksH*nChunksW)

	for _, c := range cells {
		startRow := c.rowChunk * chunkH
		startCol := c.pointSet * chunkW
		evals := sliceEvals(g.evals, startRow, chunkH, startCol, chunkW)
		commits := g.commits[startRow : startRow+chunkH]
		ok, err := table.Verify(transcript.New("open gamma"), commits, c.pointSet, evals, c.proof)
		require.NoError(t, err)
		require.True(t, ok, "cell (%d,%d)", c.rowChunk, c.pointSet)
	}
}

func TestGridVerifyRejectsSwappedCommitments(t *testing.T) {
	table, g, chunkH, chunkW, nChunksH, nChunksW := buildSmallGrid(t)

	cells, err := openGrid(context.Background(), table, g, chunkH, chunkW, nChunksH, nChunksW)
	require.NoError(t, err)

	c := cells[0]
	startRow := c.rowChunk * chunkH
	startCol := c.pointSet * chunkW
	evals := sliceEvals(g.evals, startRow, chunkH, startCol, chunkW)
	commits := append([]method1.Commitment(nil), g.commits[startRow:startRow+chunkH]...)
	require.True(t, len(commits) >= 2)
	commits[0], commits[1] = commits[1], commits[0]

	ok, err := table.Verify(transcript.New("open gamma"), commits, c.pointSet, evals, c.proof)
	require.NoError(t, err)
	require.False(t, ok)
}
