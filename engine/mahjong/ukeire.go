package mahjong

import (
	"sort"
)

// Wait 一种进张及其剩余枚数
type Wait struct {
	Tile      TileType
	Remaining int
}

// UkeireOption 打出 Discard 后的向听和进张
type UkeireOption struct {
	Discard TileType
	Shanten int
	Waits   []Wait
	Total   int
}

func totalRemaining(waits []Wait) int {
	n := 0
	for _, w := range waits {
		n += w.Remaining
	}
	return n
}

// Ukeire14 14 张手牌：逐一试打每种牌，再逐一试摸，记录能让向听数下降的摸牌。
// 结果按进张总数降序，同数按牌序升序；没有任何进张的打法不列出。
func (s *Searcher) Ukeire14(h Hand34) (int, []UkeireOption, error) {
	n, err := h.shapeCheck()
	if err != nil {
		return 0, nil, err
	}
	if n != 14 {
		return 0, nil, newHandError(KindInputShape, "计算打牌进张需要14张，实际%d张", n)
	}

	work := h
	current := s.shanten(&work)
	var out []UkeireOption
	for i := 0; i < NumTileTypes; i++ {
		if work[i] == 0 {
			continue
		}
		work[i]--
		var waits []Wait
		after := current
		for j := 0; j < NumTileTypes; j++ {
			if work[j] >= MaxCopies {
				continue
			}
			remaining := MaxCopies - int(work[j])
			work[j]++
			if sh := s.shanten(&work); sh < current {
				waits = append(waits, Wait{Tile: TileType(j), Remaining: remaining})
				after = sh
			}
			work[j]--
		}
		work[i]++

		if len(waits) == 0 {
			continue
		}
		out = append(out, UkeireOption{
			Discard: TileType(i),
			Shanten: after,
			Waits:   waits,
			Total:   totalRemaining(waits),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Total != out[b].Total {
			return out[a].Total > out[b].Total
		}
		return out[a].Discard < out[b].Discard
	})
	return current, out, nil
}

// Waits 13 张听牌形的和了牌
func (s *Searcher) Waits(h Hand34) ([]Wait, error) {
	n, err := h.shapeCheck()
	if err != nil {
		return nil, err
	}
	if n != 13 {
		return nil, newHandError(KindInputShape, "计算听牌需要13张，实际%d张", n)
	}

	work := h
	var waits []Wait
	for j := 0; j < NumTileTypes; j++ {
		if work[j] >= MaxCopies {
			continue
		}
		remaining := MaxCopies - int(work[j])
		work[j]++
		if s.shanten(&work) == -1 {
			waits = append(waits, Wait{Tile: TileType(j), Remaining: remaining})
		}
		work[j]--
	}
	return waits, nil
}

// BestAdvance 13 张未听牌：摸入后能达到的最小向听，以及所有达到它的牌
func (s *Searcher) BestAdvance(h Hand34) (int, []Wait, error) {
	n, err := h.shapeCheck()
	if err != nil {
		return 0, nil, err
	}
	if n != 13 {
		return 0, nil, newHandError(KindInputShape, "计算进张需要13张，实际%d张", n)
	}

	work := h
	best := 9
	var tiles []Wait
	for j := 0; j < NumTileTypes; j++ {
		if work[j] >= MaxCopies {
			continue
		}
		remaining := MaxCopies - int(work[j])
		work[j]++
		sh := s.shanten(&work)
		work[j]--

		switch {
		case sh < best:
			best = sh
			tiles = append(tiles[:0], Wait{Tile: TileType(j), Remaining: remaining})
		case sh == best:
			tiles = append(tiles, Wait{Tile: TileType(j), Remaining: remaining})
		}
	}
	return best, tiles, nil
}
