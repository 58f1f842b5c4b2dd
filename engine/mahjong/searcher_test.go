package mahjong_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"paili/engine/mahjong"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t testing.TB, text string) mahjong.Hand34 {
	t.Helper()
	h, err := mahjong.ParseHand34(text)
	require.NoError(t, err)
	return h
}

func shanten(t testing.TB, text string) int {
	t.Helper()
	sh, err := mahjong.Shanten(hand(t, text))
	require.NoError(t, err)
	return sh
}

func TestSearcher_KokushiShantenAndAgari(t *testing.T) {
	s := mahjong.NewSearcher()
	h13 := hand(t, "19m19p19s1234567z")
	got, err := s.Shanten(h13)
	require.NoError(t, err)
	if got != 0 {
		t.Fatalf("kokushi shanten expected 0, got %d", got)
	}

	waits, err := s.Waits(h13)
	require.NoError(t, err)
	if len(waits) != 13 {
		t.Fatalf("kokushi 13-sided wait expected 13 kinds, got %d", len(waits))
	}

	h14 := h13
	h14[mahjong.Man1]++
	if !s.IsAgari(h14) {
		t.Fatalf("kokushi agari expected true")
	}
}

func TestSearcher_ChiitoiShantenAndAgari(t *testing.T) {
	s := mahjong.NewSearcher()

	// 6 对 + 1 单张
	h13 := hand(t, "112233m1122p11s1z")
	got, err := s.Shanten(h13)
	require.NoError(t, err)
	if got != 0 {
		t.Fatalf("chiitoi shanten expected 0, got %d", got)
	}

	waits, err := s.Waits(h13)
	require.NoError(t, err)
	if len(waits) != 1 || waits[0].Tile != mahjong.East {
		t.Fatalf("chiitoi waits expected [East], got %v", waits)
	}
	if waits[0].Remaining != 3 {
		t.Fatalf("chiitoi remaining expected 3 (4-1), got %d", waits[0].Remaining)
	}

	h14 := h13
	h14[mahjong.East]++
	if !s.IsAgari(h14) {
		t.Fatalf("chiitoi agari expected true")
	}
}

func TestShantenChiitoi_FourOfAKindIsOnePair(t *testing.T) {
	h := hand(t, "1111m22m33m44m55m6m")
	// 5 个不同对子 + 1 张，四张只算一对
	assert.Equal(t, 2, mahjong.ShantenChiitoi(&h))
}

func TestShanten_SevenPairsWithoutStandardShape(t *testing.T) {
	text := "1199m1199p1199s11z"
	h := hand(t, text)
	s := mahjong.NewSearcher()
	assert.Equal(t, -1, shanten(t, text))
	assert.Greater(t, s.ShantenNormal(&h), -1)
}

func TestShanten_NineGates(t *testing.T) {
	// 纯正九莲宝灯听牌形 13 张，九面听
	h13 := hand(t, "1112345678999m")
	require.Equal(t, 13, h13.Count())
	s := mahjong.NewSearcher()
	sh, err := s.Shanten(h13)
	require.NoError(t, err)
	assert.Equal(t, 0, sh)

	waits, err := s.Waits(h13)
	require.NoError(t, err)
	require.Len(t, waits, 9)
	for i, w := range waits {
		assert.Equal(t, mahjong.Man1+mahjong.TileType(i), w.Tile)
	}

	assert.Equal(t, -1, shanten(t, "11123455678999m"))
}

func TestShanten_ShanponCountsPairAsTaatsu(t *testing.T) {
	text := "123m456m789m11p22p"
	assert.Equal(t, 0, shanten(t, text))

	waits, err := mahjong.NewSearcher().Waits(hand(t, text))
	require.NoError(t, err)
	assert.Equal(t, []mahjong.Wait{
		{Tile: mahjong.Pin1, Remaining: 2},
		{Tile: mahjong.Pin2, Remaining: 2},
	}, waits)
}

func TestShanten_NotGreedy(t *testing.T) {
	// 先取刻子会得到 111 222 333 444 55，先取顺子也必须能找到同样的拆法
	assert.Equal(t, -1, shanten(t, "11122233344455m"))
	assert.Equal(t, -1, shanten(t, "12345678999m111z"))
	assert.Equal(t, 0, shanten(t, "2234567m123p789s"))
	assert.Equal(t, 1, shanten(t, "123456789m12p5s9s"))
}

func TestShanten_WaitOnlyOnFifthCopy(t *testing.T) {
	// 1111m 只能听第五张 1m，不算听牌
	assert.Equal(t, 1, shanten(t, "1111m234p567s888s"))
	assert.Equal(t, 1, shanten(t, "1111z234p567s888s"))
	// 打掉一张 1m 就能单骑 9p
	assert.Equal(t, 0, shanten(t, "1111m234p567s888s9p"))
	assert.Equal(t, 1, shanten(t, "1111m234p567s789s"))
	// 四张之外还有别的和了牌时不受影响
	assert.Equal(t, 0, shanten(t, "1111m23m567s888s9p"))
}

func TestShanten_RejectsWrongCount(t *testing.T) {
	for _, text := range []string{"123456789m123p", "123456789m123p11z1s", ""} {
		_, err := mahjong.Shanten(hand(t, text))
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, mahjong.ErrInputShape), text)
	}
}

func TestShanten_RangeAndPermutationInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for n := 0; n < 200; n++ {
		var wall []mahjong.TileType
		for i := 0; i < mahjong.NumTileTypes; i++ {
			for k := 0; k < mahjong.MaxCopies; k++ {
				wall = append(wall, mahjong.TileType(i))
			}
		}
		rng.Shuffle(len(wall), func(i, j int) { wall[i], wall[j] = wall[j], wall[i] })
		size := 13 + n%2
		picked := wall[:size]

		var fwd, rev strings.Builder
		for _, tile := range picked {
			fwd.WriteString(tile.String())
		}
		for i := len(picked) - 1; i >= 0; i-- {
			rev.WriteString(picked[i].String())
		}

		a := shanten(t, fwd.String())
		b := shanten(t, rev.String())
		require.Equal(t, a, b, fwd.String())
		require.GreaterOrEqual(t, a, -1)
		require.LessOrEqual(t, a, 8)
		if size == 13 {
			require.GreaterOrEqual(t, a, 0)
			if a == 0 {
				waits, err := mahjong.NewSearcher().Waits(hand(t, fwd.String()))
				require.NoError(t, err)
				require.NotEmpty(t, waits, fwd.String())
			}
		}
	}
}

func TestShanten_DoesNotMutateInput(t *testing.T) {
	h := hand(t, "1233445566789m")
	before := h
	s := mahjong.NewSearcher()
	_, _ = s.Shanten(h)
	_, _ = s.Waits(h)
	_, _, _ = s.BestAdvance(h)
	assert.Equal(t, before, h)
}
