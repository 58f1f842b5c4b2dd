package analysis_test

import (
	"testing"

	"paili/engine/analysis"
	"paili/engine/mahjong"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ProducesScoredHands(t *testing.T) {
	a := analysis.NewAnalyzer()
	hands, err := analysis.NewGenerator(a, 42).Generate(8)
	require.NoError(t, err)
	require.Len(t, hands, 8)

	for _, h := range hands {
		assert.Greater(t, h.Han, 0)
		assert.NotEmpty(t, h.Yaku)
		assert.Contains(t, []string{"东", "南"}, h.RoundWind)

		h34, err := mahjong.ParseHand34(h.Hand)
		require.NoError(t, err)
		assert.Equal(t, 14, h34.Count())
		assert.True(t, mahjong.IsAgari(h34), h.Hand)

		win, _, err := mahjong.ParseTile(h.WinTile)
		require.NoError(t, err)
		assert.Greater(t, h34[win], uint8(0))
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := analysis.NewAnalyzer()
	x, err := analysis.NewGenerator(a, 7).Generate(5)
	require.NoError(t, err)
	y, err := analysis.NewGenerator(a, 7).Generate(5)
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestGenerator_Exhausted(t *testing.T) {
	hands, err := analysis.NewGenerator(analysis.NewAnalyzer(), 1).WithMaxAttempts(0).Generate(3)
	assert.ErrorIs(t, err, analysis.ErrGenerateExhausted)
	assert.Empty(t, hands)
}
