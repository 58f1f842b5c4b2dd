package scoring

import (
	"paili/engine/mahjong"
)

type Shape int

const (
	ShapeStandard Shape = iota // 4面子1雀头
	ShapeChiitoi               // 七对子
	ShapeKokushi               // 国士无双
)

type WaitKind int

const (
	WaitRyanmen WaitKind = iota // 两面
	WaitKanchan                 // 嵌张
	WaitPenchan                 // 边张
	WaitTanki                   // 单骑
	WaitShanpon                 // 双碰
)

type setKind int

const (
	setSequence setKind = iota
	setTriplet
)

// meld tile 为顺子首张或刻子的牌
type meld struct {
	kind setKind
	tile mahjong.TileType
	open bool
}

// arrangement 一种拆解方式加上和了牌所在的位置
type arrangement struct {
	shape Shape
	pair  mahjong.TileType
	melds [4]meld
	wait  WaitKind
}

func (a *arrangement) sets() []meld {
	if a.shape != ShapeStandard {
		return nil
	}
	return a.melds[:]
}

// arrangements 枚举 14 张和了形的全部解释，含和了牌落在不同面子上的情况
func arrangements(h mahjong.Hand34, win mahjong.TileType, tsumo bool) []arrangement {
	var out []arrangement

	if mahjong.ShantenKokushi(&h) == -1 {
		out = append(out, arrangement{shape: ShapeKokushi, pair: win, wait: WaitTanki})
	}
	if isSevenPairs(h) {
		out = append(out, arrangement{shape: ShapeChiitoi, pair: win, wait: WaitTanki})
	}

	for p := 0; p < mahjong.NumTileTypes; p++ {
		if h[p] < 2 {
			continue
		}
		work := h
		work[p] -= 2
		var stack [4]meld
		collectMelds(&work, stack[:0], func(melds []meld) {
			out = append(out, assignWait(mahjong.TileType(p), melds, win, tsumo)...)
		})
	}
	return out
}

func isSevenPairs(h mahjong.Hand34) bool {
	pairs := 0
	for _, c := range h {
		switch c {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// collectMelds 在 h 上回溯，凑满 4 组面子时回调
func collectMelds(h *mahjong.Hand34, acc []meld, emit func([]meld)) {
	i := 0
	for i < mahjong.NumTileTypes && h[i] == 0 {
		i++
	}
	if i == mahjong.NumTileTypes {
		if len(acc) == 4 {
			emit(acc)
		}
		return
	}
	if len(acc) == 4 {
		return
	}
	t := mahjong.TileType(i)

	if h[i] >= 3 {
		h[i] -= 3
		collectMelds(h, append(acc, meld{kind: setTriplet, tile: t}), emit)
		h[i] += 3
	}
	if t.IsNumbered() && t.Rank() <= 7 && h[i+1] > 0 && h[i+2] > 0 {
		h[i]--
		h[i+1]--
		h[i+2]--
		collectMelds(h, append(acc, meld{kind: setSequence, tile: t}), emit)
		h[i]++
		h[i+1]++
		h[i+2]++
	}
}

// assignWait 和了牌可能补成雀头或任一含它的面子，每种都算一次
func assignWait(pair mahjong.TileType, melds []meld, win mahjong.TileType, tsumo bool) []arrangement {
	var base arrangement
	base.shape = ShapeStandard
	base.pair = pair
	copy(base.melds[:], melds)

	var out []arrangement
	if pair == win {
		a := base
		a.wait = WaitTanki
		out = append(out, a)
	}
	for k, m := range base.melds {
		switch m.kind {
		case setTriplet:
			if m.tile != win {
				continue
			}
			a := base
			a.wait = WaitShanpon
			a.melds[k].open = !tsumo
			out = append(out, a)
		case setSequence:
			if win < m.tile || win > m.tile+2 || win.Suit() != m.tile.Suit() {
				continue
			}
			a := base
			a.wait = sequenceWait(m.tile, win)
			out = append(out, a)
		}
	}
	return out
}

func sequenceWait(start, win mahjong.TileType) WaitKind {
	switch {
	case win == start+1:
		return WaitKanchan
	case win == start && start.Rank() == 7:
		return WaitPenchan
	case win == start+2 && start.Rank() == 1:
		return WaitPenchan
	default:
		return WaitRyanmen
	}
}
