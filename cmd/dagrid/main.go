// Command dagrid demonstrates the precomputed Method-1 variant against an
// erasure-coded data-availability grid: a byte blob is packed into a
// GRID_WIDTH x GRID_HEIGHT field of scalars, every column is erasure-coded
// to twice its height, every row is committed, and every (row-chunk,
// col-chunk) cell of the resulting grid is opened and verified against a
// single precomputed table shared across every row.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/kzg"
	"github.com/ahralabs/pmp-go/method1"
	"github.com/ahralabs/pmp-go/method1/precompute"
	"github.com/ahralabs/pmp-go/poly"
	"github.com/ahralabs/pmp-go/transcript"
)

func main() {
	gridWidth := flag.Int("grid-width", 256, "number of field elements per row")
	gridHeight := flag.Int("grid-height", 4096, "number of rows before erasure coding")
	nChunksW := flag.Int("chunks-w", 4, "number of point sets to split each row's width into")
	nChunksH := flag.Int("chunks-h", 1024, "number of row-chunks to open/verify across the erasure-coded grid")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	lvl := zerolog.InfoLevel
	if *verbose {
		lvl = zerolog.DebugLevel
	}
	logger := log.Logger.Level(lvl)
	kzg.SetLogger(logger)

	if err := run(context.Background(), logger, *gridWidth, *gridHeight, *nChunksW, *nChunksH); err != nil {
		logger.Error().Err(err).Msg("dagrid failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, logger zerolog.Logger, gridWidth, gridHeight, nChunksW, nChunksH int) error {
	if gridWidth%nChunksW != 0 {
		return fmt.Errorf("grid-width %d must be divisible by chunks-w %d", gridWidth, nChunksW)
	}
	chunkW := gridWidth / nChunksW

	domainW := fft.NewDomain(uint64(gridWidth))
	domainH := fft.NewDomain(uint64(gridHeight))
	domain2H := fft.NewDomain(2 * domainH.Cardinality)

	setupT := time.Now()
	setup, err := kzg.NewSetup(gridWidth, chunkW)
	if err != nil {
		return fmt.Errorf("generating kzg setup: %w", err)
	}
	base := method1.New(setup)
	logger.Info().Dur("elapsed", time.Since(setupT)).Msg("trusted setup generated")

	widthPoints := poly.GenPowers(domainW.Generator, gridWidth)
	pointSets := make([][]curve.Fr, nChunksW)
	for i, p := range widthPoints {
		k := i / chunkW
		pointSets[k] = append(pointSets[k], p)
	}

	tableT := time.Now()
	table, err := precompute.NewTable(base, pointSets)
	if err != nil {
		return fmt.Errorf("building precompute table: %w", err)
	}
	logger.Info().Dur("elapsed", time.Since(tableT)).Int("point_sets", table.Len()).Msg("precompute table built")

	dataLen := bytesPerField * gridHeight * gridWidth
	data := make([]byte, dataLen)
	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("sampling grid data: %w", err)
	}

	gridT := time.Now()
	g, err := buildGrid(ctx, data, gridWidth, base, domainH, domain2H, domainW)
	if err != nil {
		return fmt.Errorf("building grid: %w", err)
	}
	logger.Info().Dur("elapsed", time.Since(gridT)).Int("rows", len(g.polys)).Msg("grid built")

	chunkH := len(g.evals) / nChunksH
	if chunkH == 0 {
		return fmt.Errorf("chunks-h %d leaves an empty row-chunk over %d evaluation rows", nChunksH, len(g.evals))
	}

	openT := time.Now()
	cells, err := openGrid(ctx, table, g, chunkH, chunkW, nChunksH, nChunksW)
	if err != nil {
		return fmt.Errorf("opening grid: %w", err)
	}
	logger.Info().Dur("elapsed", time.Since(openT)).Int("cells", len(cells)).Msg("grid opened")

	verifyT := time.Now()
	for _, c := range cells {
		c := c
		startRow := c.rowChunk * chunkH
		startCol := c.pointSet * chunkW
		evals := sliceEvals(g.evals, startRow, chunkH, startCol, chunkW)
		commits := g.commits[startRow : startRow+chunkH]
		ok, err := table.Verify(transcript.New("open gamma"), commits, c.pointSet, evals, c.proof)
		if err != nil {
			return fmt.Errorf("verifying cell (%d,%d): %w", c.rowChunk, c.pointSet, err)
		}
		if !ok {
			return fmt.Errorf("verification failed at cell (%d,%d)", c.rowChunk, c.pointSet)
		}
	}
	logger.Info().Dur("elapsed", time.Since(verifyT)).Msg("grid verified")

	return nil
}

// cell identifies one (row-chunk, point-set) opening in the grid.
type cell struct {
	rowChunk, pointSet int
	proof              method1.Proof
}

func openGrid(ctx context.Context, table *precompute.Table, g *grid, chunkH, chunkW, nChunksH, nChunksW int) ([]cell, error) {
	cells := make([]cell, nChunksH*nChunksW)
	eg, _ := errgroup.WithContext(ctx)
	idx := 0
	for i := 0; i < nChunksH; i++ {
		for j := 0; j < nChunksW; j++ {
			i, j, idx := i, j, idx
			eg.Go(func() error {
				startRow := i * chunkH
				startCol := j * chunkW
				evals := sliceEvals(g.evals, startRow, chunkH, startCol, chunkW)
				polys := g.polys[startRow : startRow+chunkH]
				proof, err := table.Open(transcript.New("open gamma"), evals, polys, j)
				if err != nil {
					return err
				}
				cells[idx] = cell{rowChunk: i, pointSet: j, proof: proof}
				return nil
			})
			idx++
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return cells, nil
}

// sliceEvals extracts the (rows, cols) sub-table of a grid's evaluation
// matrix starting at (startRow, startCol).
func sliceEvals(evals [][]curve.Fr, startRow, rows, startCol, cols int) [][]curve.Fr {
	out := make([][]curve.Fr, rows)
	for i := 0; i < rows; i++ {
		out[i] = evals[startRow+i][startCol : startCol+cols]
	}
	return out
}
