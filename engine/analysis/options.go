package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"paili/engine/mahjong"
	"paili/engine/scoring"
)

// Options 和了时的场况。零值的风位是东，需要“未指定”时从 DefaultOptions 开始。
type Options struct {
	WinTile      string       `json:"win_tile"` // 为空时按固定规则选取
	Tsumo        bool         `json:"tsumo"`
	SeatWind     mahjong.Wind `json:"seat_wind"`
	RoundWind    mahjong.Wind `json:"round_wind"`
	Riichi       bool         `json:"riichi"`
	DoubleRiichi bool         `json:"double_riichi"`
	Ippatsu      bool         `json:"ippatsu"`
	Haitei       bool         `json:"haitei"`
	Houtei       bool         `json:"houtei"`
	Rinshan      bool         `json:"rinshan"`
	Chankan      bool         `json:"chankan"`
	Tenhou       bool         `json:"tenhou"`
	Chiihou      bool         `json:"chiihou"`
	Dora         string       `json:"dora"` // 宝牌指示牌，如 "3m7z"
	Honba        int          `json:"honba"`
}

// DefaultOptions 荣和、闲家、不指定风位
func DefaultOptions() Options {
	return Options{
		SeatWind:  mahjong.WindNone,
		RoundWind: mahjong.WindNone,
	}
}

// explicitWinTile 没有指定时返回 false
func (o Options) explicitWinTile() (mahjong.TileType, bool, error) {
	if strings.TrimSpace(o.WinTile) == "" {
		return 0, false, nil
	}
	t, _, err := mahjong.ParseTile(o.WinTile)
	if err != nil {
		return 0, false, fmt.Errorf("%w: 和了牌 %v", ErrInvalidOption, err)
	}
	return t, true, nil
}

func (o Options) doraIndicators() ([]mahjong.TileType, error) {
	if strings.TrimSpace(o.Dora) == "" {
		return nil, nil
	}
	tiles, err := mahjong.ParseTiles(o.Dora)
	if err != nil {
		return nil, fmt.Errorf("%w: 宝牌指示牌 %v", ErrInvalidOption, err)
	}
	if len(tiles) == 0 || len(tiles) > 10 {
		return nil, fmt.Errorf("%w: 宝牌指示牌 %q", ErrInvalidOption, o.Dora)
	}
	return tiles, nil
}

func (o Options) validate() error {
	if o.SeatWind != mahjong.WindNone && !o.SeatWind.Valid() {
		return fmt.Errorf("%w: 自风 %d", ErrInvalidOption, o.SeatWind)
	}
	if o.RoundWind != mahjong.WindNone && !o.RoundWind.Valid() {
		return fmt.Errorf("%w: 场风 %d", ErrInvalidOption, o.RoundWind)
	}
	if o.Honba < 0 {
		return fmt.Errorf("%w: 本场数 %d", ErrInvalidOption, o.Honba)
	}
	if _, _, err := o.explicitWinTile(); err != nil {
		return err
	}
	_, err := o.doraIndicators()
	return err
}

func (o Options) scoringContext(win mahjong.TileType, aka int, dora []mahjong.TileType) *scoring.Context {
	return &scoring.Context{
		WinTile:        win,
		IsTsumo:        o.Tsumo,
		SeatWind:       o.SeatWind,
		RoundWind:      o.RoundWind,
		IsRiichi:       o.Riichi,
		IsDoubleRiichi: o.DoubleRiichi,
		IsIppatsu:      o.Ippatsu,
		IsHaitei:       o.Haitei,
		IsHoutei:       o.Houtei,
		IsRinshan:      o.Rinshan,
		IsChankan:      o.Chankan,
		IsTenhou:       o.Tenhou,
		IsChiihou:      o.Chiihou,
		DoraIndicators: dora,
		AkaDora:        aka,
		Honba:          o.Honba,
	}
}

// key 场况部分的缓存键
func (o Options) key() string {
	flags := []bool{o.Tsumo, o.Riichi, o.DoubleRiichi, o.Ippatsu, o.Haitei, o.Houtei, o.Rinshan, o.Chankan, o.Tenhou, o.Chiihou}
	var b strings.Builder
	for _, f := range flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(o.SeatWind)))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(o.RoundWind)))
	b.WriteByte('|')
	if dora, err := o.doraIndicators(); err == nil {
		for _, d := range dora {
			b.WriteString(d.String())
		}
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(o.Honba))
	return b.String()
}

// CacheKey 结果只由计数数组、红五张数、和了牌与场况决定，与输入顺序无关。
// 无法解析的输入返回 false，调用方不应缓存。
func CacheKey(text string, opts Options) (string, bool) {
	comps := mahjong.ParseHand(text)
	h, aka, err := comps.ToHand34()
	if err != nil || comps.Empty() {
		return "", false
	}
	win, explicit, err := opts.explicitWinTile()
	if err != nil {
		return "", false
	}
	// 和了牌只影响和了形的计分
	winKey := "-"
	if h.Count() == 14 && mahjong.IsAgari(h) {
		if !explicit {
			win, _ = comps.DesignatedWinTile()
		}
		winKey = win.String()
	}
	return fmt.Sprintf("%s|%d|%s|%s", h.Key(), aka, winKey, opts.key()), true
}
