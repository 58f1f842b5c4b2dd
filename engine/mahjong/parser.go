package mahjong

import (
	"strings"
)

// HandComponents 按花色拆开的原始数字串，保留输入顺序
type HandComponents struct {
	Man    string `json:"man"`
	Pin    string `json:"pin"`
	So     string `json:"so"`
	Honors string `json:"honors"`
}

// ParseHand 解析 "123m456p789s11z" 形式的手牌。
// 数字先累积，遇到花色标记 m/p/s/z (大小写均可) 时归入该花色；
// 其他字符忽略，末尾没有标记的数字丢弃。
func ParseHand(text string) HandComponents {
	var c HandComponents
	var pending strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			pending.WriteRune(r)
		case r == 'm' || r == 'M':
			c.Man += pending.String()
			pending.Reset()
		case r == 'p' || r == 'P':
			c.Pin += pending.String()
			pending.Reset()
		case r == 's' || r == 'S':
			c.So += pending.String()
			pending.Reset()
		case r == 'z' || r == 'Z':
			c.Honors += pending.String()
			pending.Reset()
		}
	}
	return c
}

func (c HandComponents) groups() [4]string {
	return [4]string{c.Man, c.Pin, c.So, c.Honors}
}

func (c HandComponents) Empty() bool {
	return c.Man == "" && c.Pin == "" && c.So == "" && c.Honors == ""
}

// Len 数字个数，不校验合法性
func (c HandComponents) Len() int {
	return len(c.Man) + len(c.Pin) + len(c.So) + len(c.Honors)
}

// Tiles 按花色顺序展开，红五记作 5
func (c HandComponents) Tiles() ([]TileType, error) {
	tiles := make([]TileType, 0, c.Len())
	for suit, digits := range c.groups() {
		for i := 0; i < len(digits); i++ {
			t, _, err := digitTile(suit, digits[i])
			if err != nil {
				return nil, err
			}
			tiles = append(tiles, t)
		}
	}
	return tiles, nil
}

// ToHand34 转为计数数组，返回红五张数。超过4张直接拒绝，不截断。
// 每个花色只有一张红五。
func (c HandComponents) ToHand34() (Hand34, int, error) {
	var h Hand34
	aka := 0
	for suit, digits := range c.groups() {
		suitRed := false
		for i := 0; i < len(digits); i++ {
			t, red, err := digitTile(suit, digits[i])
			if err != nil {
				return Hand34{}, 0, err
			}
			if h[t] >= MaxCopies {
				return Hand34{}, 0, newHandError(KindOverfullTile, "%s 超过%d张", t, MaxCopies)
			}
			if red {
				if suitRed {
					return Hand34{}, 0, newHandError(KindInvalidTile, "0%c 重复，每个花色只有一张红五", suitMarkers[suit])
				}
				suitRed = true
				aka++
			}
			h[t]++
		}
	}
	return h, aka, nil
}

// DesignatedWinTile 第一个非空花色组(万、筒、索、字)中最后输入的那张
func (c HandComponents) DesignatedWinTile() (TileType, bool) {
	for suit, digits := range c.groups() {
		if digits == "" {
			continue
		}
		t, _, err := digitTile(suit, digits[len(digits)-1])
		if err != nil {
			return 0, false
		}
		return t, true
	}
	return 0, false
}

func (c HandComponents) String() string {
	var b strings.Builder
	for suit, digits := range c.groups() {
		if digits == "" {
			continue
		}
		b.WriteString(digits)
		b.WriteByte(suitMarkers[suit])
	}
	return b.String()
}

// ParseTile 解析单张牌，例如 "5p"、"0m"(红五)、"7z"
func ParseTile(s string) (TileType, bool, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return 0, false, newHandError(KindInvalidTile, "无法解析的牌 %q", s)
	}
	suit := strings.IndexByte("mpsz", s[1]|0x20)
	if suit < 0 {
		return 0, false, newHandError(KindInvalidTile, "无法解析的牌 %q", s)
	}
	return digitTile(suit, s[0])
}

// ParseTiles 解析一串牌，如宝牌指示牌 "3m7z"
func ParseTiles(text string) ([]TileType, error) {
	return ParseHand(text).Tiles()
}

func digitTile(suit int, d byte) (TileType, bool, error) {
	if d < '0' || d > '9' {
		return 0, false, newHandError(KindInvalidTile, "非法数字 %q", d)
	}
	rank := int(d - '0')
	if suit == SuitHonors {
		if rank < 1 || rank > 7 {
			return 0, false, newHandError(KindInvalidTile, "字牌只有1-7，得到 %dz", rank)
		}
		return East + TileType(rank-1), false, nil
	}
	if rank == 0 {
		return TileOf(suit, 5), true, nil
	}
	return TileOf(suit, rank), false, nil
}
