package mahjong

import (
	"strings"
)

// Hand34 每种牌的张数
type Hand34 [NumTileTypes]uint8

// ParseHand34 文本直接转计数数组
func ParseHand34(text string) (Hand34, error) {
	h, _, err := ParseHand(text).ToHand34()
	return h, err
}

func Hand34FromTiles(tiles []TileType) (Hand34, error) {
	var h Hand34
	for _, t := range tiles {
		if !t.Valid() {
			return Hand34{}, newHandError(KindInvalidTile, "无效的牌 %d", int(t))
		}
		if h[t] >= MaxCopies {
			return Hand34{}, newHandError(KindOverfullTile, "%s 超过%d张", t, MaxCopies)
		}
		h[t]++
	}
	return h, nil
}

func (h Hand34) Count() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h *Hand34) hasQuad() bool {
	for _, c := range h {
		if c >= MaxCopies {
			return true
		}
	}
	return false
}

// Validate 每种牌 0-4 张
func (h Hand34) Validate() error {
	for i, c := range h {
		if c > MaxCopies {
			return newHandError(KindOverfullTile, "%s 有%d张", TileType(i), c)
		}
	}
	return nil
}

func (h Hand34) Tiles() []TileType {
	out := make([]TileType, 0, h.Count())
	for i, c := range h {
		for k := uint8(0); k < c; k++ {
			out = append(out, TileType(i))
		}
	}
	return out
}

// Key 紧凑的缓存键，与输入顺序无关
func (h Hand34) Key() string {
	var b [NumTileTypes]byte
	for i := 0; i < NumTileTypes; i++ {
		b[i] = '0' + h[i]
	}
	return string(b[:])
}

// String 规范文本，如 "123m456p11z"
func (h Hand34) String() string {
	var b strings.Builder
	for suit := SuitMan; suit <= SuitHonors; suit++ {
		n := 9
		if suit == SuitHonors {
			n = 7
		}
		wrote := false
		for r := 1; r <= n; r++ {
			for k := uint8(0); k < h[TileOf(suit, r)]; k++ {
				b.WriteByte(byte('0' + r))
				wrote = true
			}
		}
		if wrote {
			b.WriteByte(suitMarkers[suit])
		}
	}
	return b.String()
}

// shapeCheck 张数必须为 13 或 14
func (h Hand34) shapeCheck() (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	n := h.Count()
	if n != 13 && n != 14 {
		return n, newHandError(KindInputShape, "需要13或14张牌，实际%d张", n)
	}
	return n, nil
}

var kokushiTiles = [13]TileType{
	Man1, Man9,
	Pin1, Pin9,
	So1, So9,
	East, South, West, North,
	White, Green, Red,
}
