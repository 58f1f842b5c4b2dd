package mahjong

import (
	"fmt"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

// WindNone 未指定风位，不产生任何风牌役
const WindNone Wind = -1

// TileType 34 种牌的规范下标，花色优先、点数其次
type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	NumTileTypes = 34
	MaxCopies    = 4
)

const (
	SuitMan    = 0
	SuitPin    = 1
	SuitSo     = 2
	SuitHonors = 3
)

// suitMarkers 花色顺序即输出顺序
var suitMarkers = [4]byte{'m', 'p', 's', 'z'}

var honorNames = [7]string{"东", "南", "西", "北", "白", "发", "中"}

var rankNames = [9]string{"一", "二", "三", "四", "五", "六", "七", "八", "九"}

var suitNames = [3]string{"万", "筒", "索"}

func TileOf(suit, rank int) TileType {
	return TileType(suit*9 + rank - 1)
}

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

func (t TileType) IsTerminal() bool {
	return t.IsNumbered() && (t.Rank() == 1 || t.Rank() == 9)
}

// IsYaochu 幺九牌：1、9、字牌
func (t TileType) IsYaochu() bool {
	return t.IsHonor() || t.IsTerminal()
}

func (t TileType) Suit() int {
	return int(t) / 9
}

// Rank 数牌 1-9，字牌 1-7
func (t TileType) Rank() int {
	return int(t)%9 + 1
}

// Next 宝牌指示牌的下一张：数牌 9→1，风牌 北→东，三元 中→白
func (t TileType) Next() TileType {
	switch {
	case t.IsNumbered():
		if t.Rank() == 9 {
			return t - 8
		}
		return t + 1
	case t.IsWind():
		if t == North {
			return East
		}
		return t + 1
	default:
		if t == Red {
			return White
		}
		return t + 1
	}
}

func (t TileType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TileType(%d)", int(t))
	}
	return fmt.Sprintf("%d%c", t.Rank(), suitMarkers[t.Suit()])
}

// Name 中文牌名
func (t TileType) Name() string {
	if !t.Valid() {
		return "未知"
	}
	if t.IsHonor() {
		return honorNames[t.Rank()-1]
	}
	return rankNames[t.Rank()-1] + suitNames[t.Suit()]
}

func (w Wind) Valid() bool {
	return w >= WindEast && w <= WindNorth
}

// Tile 风位对应的风牌
func (w Wind) Tile() TileType {
	return East + TileType(w)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// ParseWind 接受 E/S/W/N、英文全称、中文、1-4，空串为 WindNone
func ParseWind(s string) (Wind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return WindNone, nil
	case "e", "east", "东", "1":
		return WindEast, nil
	case "s", "south", "南", "2":
		return WindSouth, nil
	case "w", "west", "西", "3":
		return WindWest, nil
	case "n", "north", "北", "4":
		return WindNorth, nil
	}
	return WindNone, fmt.Errorf("unknown wind %q", s)
}

func (w Wind) MarshalText() ([]byte, error) {
	switch w {
	case WindEast:
		return []byte("E"), nil
	case WindSouth:
		return []byte("S"), nil
	case WindWest:
		return []byte("W"), nil
	case WindNorth:
		return []byte("N"), nil
	default:
		return []byte(""), nil
	}
}

func (w *Wind) UnmarshalText(text []byte) error {
	v, err := ParseWind(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
