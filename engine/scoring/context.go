package scoring

import (
	"errors"
	"fmt"

	"paili/engine/mahjong"
)

var (
	ErrHandNotComplete  = errors.New("手牌未和了")
	ErrWinTileNotInHand = errors.New("和了牌不在手牌中")
	ErrInvalidContext   = errors.New("和了状况不合法")
)

// Context 和了时的场况
type Context struct {
	WinTile   mahjong.TileType
	IsTsumo   bool
	SeatWind  mahjong.Wind
	RoundWind mahjong.Wind

	IsRiichi       bool
	IsDoubleRiichi bool
	IsIppatsu      bool
	IsHaitei       bool
	IsHoutei       bool
	IsRinshan      bool
	IsChankan      bool
	IsTenhou       bool
	IsChiihou      bool

	DoraIndicators []mahjong.TileType
	AkaDora        int
	Honba          int
}

// NewContext 默认荣和、闲家、不指定风位
func NewContext(win mahjong.TileType) *Context {
	return &Context{
		WinTile:   win,
		SeatWind:  mahjong.WindNone,
		RoundWind: mahjong.WindNone,
	}
}

func (c *Context) IsDealer() bool {
	return c.SeatWind == mahjong.WindEast
}

func (c *Context) validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidContext, fmt.Sprintf(format, args...))
	}
	switch {
	case !c.WinTile.Valid():
		return bad("和了牌 %d", int(c.WinTile))
	case c.IsRiichi && c.IsDoubleRiichi:
		return bad("立直与双立直不能同时成立")
	case c.IsIppatsu && !c.IsRiichi && !c.IsDoubleRiichi:
		return bad("一发需要立直")
	case c.IsHaitei && !c.IsTsumo:
		return bad("海底捞月需要自摸")
	case c.IsHoutei && c.IsTsumo:
		return bad("河底捞鱼需要荣和")
	case c.IsRinshan && !c.IsTsumo:
		return bad("岭上开花需要自摸")
	case c.IsChankan && c.IsTsumo:
		return bad("枪杠需要荣和")
	case c.IsTenhou && (!c.IsTsumo || !c.IsDealer()):
		return bad("天和需要庄家自摸")
	case c.IsChiihou && (!c.IsTsumo || c.IsDealer()):
		return bad("地和需要闲家自摸")
	case c.AkaDora < 0 || c.AkaDora > 3:
		return bad("赤宝牌 %d 张", c.AkaDora)
	case c.Honba < 0:
		return bad("本场数 %d", c.Honba)
	}
	for _, d := range c.DoraIndicators {
		if !d.Valid() {
			return bad("宝牌指示牌 %d", int(d))
		}
	}
	return nil
}

// Rules 可选规则
type Rules struct {
	AkaDora       bool // 计入赤宝牌
	DoubleWindFu  bool // 连风牌雀头记4符
	KazoeYakuman  bool // 13番以上算役满
	DoubleYakuman bool // 允许双倍役满
}

func DefaultRules() Rules {
	return Rules{
		AkaDora:       true,
		DoubleWindFu:  true,
		KazoeYakuman:  true,
		DoubleYakuman: true,
	}
}
