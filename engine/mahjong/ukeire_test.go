package mahjong_test

import (
	"testing"

	"paili/engine/mahjong"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUkeire14_SortedByTotalThenIndex(t *testing.T) {
	s := mahjong.NewSearcher()
	current, opts, err := s.Ukeire14(hand(t, "123456789m123p19s"))
	require.NoError(t, err)
	assert.Equal(t, 0, current)
	require.Len(t, opts, 2)

	assert.Equal(t, mahjong.So1, opts[0].Discard)
	assert.Equal(t, []mahjong.Wait{{Tile: mahjong.So9, Remaining: 3}}, opts[0].Waits)
	assert.Equal(t, -1, opts[0].Shanten)
	assert.Equal(t, mahjong.So9, opts[1].Discard)
	assert.Equal(t, 3, opts[1].Total)
}

func TestUkeire14_EveryWaitImproves(t *testing.T) {
	s := mahjong.NewSearcher()
	h := hand(t, "1235689m24p3578s1z")
	current, opts, err := s.Ukeire14(h)
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	for i, opt := range opts {
		if i > 0 {
			prev := opts[i-1]
			ordered := prev.Total > opt.Total || (prev.Total == opt.Total && prev.Discard < opt.Discard)
			require.True(t, ordered, "options out of order at %d", i)
		}
		h13 := h
		h13[opt.Discard]--
		for _, w := range opt.Waits {
			require.Equal(t, mahjong.MaxCopies-int(h13[w.Tile]), w.Remaining)
			h14 := h13
			h14[w.Tile]++
			sh, err := mahjong.Shanten(h14)
			require.NoError(t, err)
			assert.Less(t, sh, current)
		}
	}
}

func TestUkeire14_RejectsThirteen(t *testing.T) {
	_, _, err := mahjong.NewSearcher().Ukeire14(hand(t, "123456789m123p1s"))
	assert.ErrorIs(t, err, mahjong.ErrInputShape)
}

func TestWaits_TankiScenario(t *testing.T) {
	s := mahjong.NewSearcher()
	h13 := hand(t, "123456789m123p1s")
	sh, err := s.Shanten(h13)
	require.NoError(t, err)
	require.Equal(t, 0, sh)

	waits, err := s.Waits(h13)
	require.NoError(t, err)
	require.NotEmpty(t, waits)
	for _, w := range waits {
		h14 := h13
		h14[w.Tile]++
		if !s.IsAgari(h14) {
			t.Fatalf("wait %s does not complete the hand", w.Tile)
		}
	}
	assert.Equal(t, []mahjong.Wait{{Tile: mahjong.So1, Remaining: 3}}, waits)
}

func TestBestAdvance_OneShanten(t *testing.T) {
	s := mahjong.NewSearcher()
	h13 := hand(t, "123456789m12p5s9s")
	best, tiles, err := s.BestAdvance(h13)
	require.NoError(t, err)
	assert.Equal(t, 0, best)
	require.NotEmpty(t, tiles)

	got := map[mahjong.TileType]bool{}
	for _, w := range tiles {
		got[w.Tile] = true
		h14 := h13
		h14[w.Tile]++
		sh, err := s.Shanten(h14)
		require.NoError(t, err)
		assert.Equal(t, 0, sh)

		// 摸入后再按最优打法打出一张仍然听牌
		_, opts, err := s.Ukeire14(h14)
		require.NoError(t, err)
		require.NotEmpty(t, opts)
		assert.Equal(t, -1, opts[0].Shanten)
	}
	assert.True(t, got[mahjong.Pin3])
	assert.True(t, got[mahjong.So5])
	assert.True(t, got[mahjong.So9])
}

func TestBestAdvance_FourCopiesNotTenpai(t *testing.T) {
	s := mahjong.NewSearcher()
	h13 := hand(t, "1111m234p567s888s")

	waits, err := s.Waits(h13)
	require.NoError(t, err)
	assert.Empty(t, waits)

	best, tiles, err := s.BestAdvance(h13)
	require.NoError(t, err)
	assert.Equal(t, 0, best)
	require.NotEmpty(t, tiles)
	assert.Contains(t, tiles, mahjong.Wait{Tile: mahjong.Man2, Remaining: 4})
	assert.Contains(t, tiles, mahjong.Wait{Tile: mahjong.Pin9, Remaining: 4})
	for _, w := range tiles {
		assert.NotEqual(t, mahjong.Man1, w.Tile)
	}

	h14 := h13
	h14[mahjong.Pin9]++
	current, opts, err := s.Ukeire14(h14)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
	require.NotEmpty(t, opts)
	assert.Equal(t, mahjong.Man1, opts[0].Discard)
	assert.Equal(t, []mahjong.Wait{{Tile: mahjong.Pin9, Remaining: 3}}, opts[0].Waits)
}

func TestBestAdvance_RejectsFourteen(t *testing.T) {
	_, _, err := mahjong.NewSearcher().BestAdvance(hand(t, "123456789m123p19s"))
	assert.ErrorIs(t, err, mahjong.ErrInputShape)
}

func BenchmarkUkeire14(b *testing.B) {
	h, err := mahjong.ParseHand34("1235689m24p3578s1z")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := mahjong.NewSearcher().Ukeire14(h); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShanten(b *testing.B) {
	h, err := mahjong.ParseHand34("1112345678999m1z")
	if err != nil {
		b.Fatal(err)
	}
	s := mahjong.NewSearcher()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Shanten(h); err != nil {
			b.Fatal(err)
		}
	}
}
