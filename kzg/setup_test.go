package kzg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahralabs/pmp-go/curve"
	"github.com/ahralabs/pmp-go/kzg"
)

func TestNewSetupSizes(t *testing.T) {
	s, err := kzg.NewSetup(16, 4)
	require.NoError(t, err)
	require.Equal(t, 16, s.MaxCoeffs())
	require.Equal(t, 4, s.MaxPoints())
	require.Len(t, s.PowersOfG1, 16)
	require.Len(t, s.PowersOfG2, 5)
}

func TestNewSetupFirstPowerIsGenerator(t *testing.T) {
	s, err := kzg.NewSetup(4, 2)
	require.NoError(t, err)
	g1, g2 := curve.Generators()
	require.True(t, s.PowersOfG1[0].Equal(&g1))
	require.True(t, s.PowersOfG2[0].Equal(&g2))
}

func TestCloneSharesBackingArrays(t *testing.T) {
	s, err := kzg.NewSetup(4, 2)
	require.NoError(t, err)
	c := s.Clone()
	require.Equal(t, s.MaxCoeffs(), c.MaxCoeffs())
	require.Equal(t, s.MaxPoints(), c.MaxPoints())
	require.Same(t, &s.PowersOfG1[0], &c.PowersOfG1[0])
	require.Same(t, &s.PowersOfG2[0], &c.PowersOfG2[0])
}

func TestMaxPointsEmptyG2(t *testing.T) {
	s := &kzg.Setup{}
	require.Equal(t, 0, s.MaxPoints())
}
