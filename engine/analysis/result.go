package analysis

import (
	"errors"

	"paili/engine/mahjong"
	"paili/engine/scoring"
)

type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindInputShape    ErrorKind = ErrorKind(mahjong.KindInputShape)
	ErrorKindOverfullTile  ErrorKind = ErrorKind(mahjong.KindOverfullTile)
	ErrorKindInvalidTile   ErrorKind = ErrorKind(mahjong.KindInvalidTile)
	ErrorKindInvalidOption ErrorKind = "invalid_option"
	ErrorKindDependency    ErrorKind = "dependency"
	ErrorKindSearch        ErrorKind = "search"
)

var (
	ErrInvalidOption = errors.New("分析参数错误")
	ErrDependency    = errors.New("计分依赖出错")
)

// IsInputError 调用方输入导致的错误
func (k ErrorKind) IsInputError() bool {
	switch k {
	case ErrorKindInputShape, ErrorKindOverfullTile, ErrorKindInvalidTile, ErrorKindInvalidOption:
		return true
	}
	return false
}

// kindOf 错误分类
func kindOf(err error) ErrorKind {
	if k := mahjong.KindOf(err); k != "" {
		return ErrorKind(k)
	}
	switch {
	case errors.Is(err, ErrInvalidOption):
		return ErrorKindInvalidOption
	case errors.Is(err, ErrDependency):
		return ErrorKindDependency
	}
	return ErrorKindSearch
}

// WaitingTile 一种进张
type WaitingTile struct {
	Tile      string `json:"tile"`
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

type DiscardOption struct {
	Discard      string        `json:"discard"`
	DiscardIndex int           `json:"discard_index"`
	DiscardName  string        `json:"discard_name"`
	Shanten      int           `json:"shanten"`
	Waits        []WaitingTile `json:"waits"`
	Total        int           `json:"total"`
}

// UkeireResult 14 张未和了：各打法的进张
type UkeireResult struct {
	Success        bool            `json:"success"`
	Error          string          `json:"error"`
	CurrentShanten int             `json:"current_shanten"`
	Options        []DiscardOption `json:"options"`
}

// WaitsResult 13 张听牌：和了牌
type WaitsResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Waits   []WaitingTile `json:"waits"`
	Total   int           `json:"total"`
}

// AdvanceResult 13 张未听牌：让向听数降到最低的摸牌
type AdvanceResult struct {
	Success       bool          `json:"success"`
	Error         string        `json:"error"`
	ResultShanten int           `json:"result_shanten"`
	Tiles         []WaitingTile `json:"tiles"`
	Total         int           `json:"total"`
}

type YakuItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Han  int    `json:"han"`
}

// HandValueResult 和了手牌的番符点数。Han 为 0 时表示无役，不是错误。
type HandValueResult struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error"`
	ErrorKind   ErrorKind    `json:"error_kind"`
	WinTile     string       `json:"win_tile"`
	Han         int          `json:"han"`
	Fu          int          `json:"fu"`
	Cost        scoring.Cost `json:"cost"`
	Yaku        []YakuItem   `json:"yaku"`
	IsYakuman   bool         `json:"is_yakuman"`
	YakumanMult int          `json:"yakuman_mult"`
	Limit       string       `json:"limit"`
}

// HandAnalysisResult 一次分析的完整结果，字段总是齐全，缺省数据为空列表或 null
type HandAnalysisResult struct {
	Success    bool                   `json:"success"`
	Error      string                 `json:"error"`
	ErrorKind  ErrorKind              `json:"error_kind"`
	HandText   string                 `json:"hand_text"`
	Normalized string                 `json:"normalized"`
	Components mahjong.HandComponents `json:"components"`
	TileCount  int                    `json:"tile_count"`
	AkaDora    int                    `json:"aka_dora"`
	Shanten    *int                   `json:"shanten"`
	Ukeire     *UkeireResult          `json:"ukeire"`
	Waits      *WaitsResult           `json:"waits"`
	Advance    *AdvanceResult         `json:"advance"`
	HandValue  *HandValueResult       `json:"hand_value"`
}

// Clone 深拷贝，缓存命中后改写 HandText 不影响缓存中的值
func (r *HandAnalysisResult) Clone() *HandAnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	if r.Shanten != nil {
		sh := *r.Shanten
		out.Shanten = &sh
	}
	if r.Ukeire != nil {
		u := *r.Ukeire
		u.Options = make([]DiscardOption, len(r.Ukeire.Options))
		for i, o := range r.Ukeire.Options {
			o.Waits = append([]WaitingTile{}, o.Waits...)
			u.Options[i] = o
		}
		out.Ukeire = &u
	}
	if r.Waits != nil {
		w := *r.Waits
		w.Waits = append([]WaitingTile{}, r.Waits.Waits...)
		out.Waits = &w
	}
	if r.Advance != nil {
		a := *r.Advance
		a.Tiles = append([]WaitingTile{}, r.Advance.Tiles...)
		out.Advance = &a
	}
	if r.HandValue != nil {
		v := *r.HandValue
		v.Yaku = append([]YakuItem{}, r.HandValue.Yaku...)
		out.HandValue = &v
	}
	return &out
}

// WithInput 复用缓存结果时换成本次请求的原始文本
func (r *HandAnalysisResult) WithInput(text string) *HandAnalysisResult {
	out := r.Clone()
	out.HandText = text
	out.Components = mahjong.ParseHand(text)
	return out
}

func waitingTiles(waits []mahjong.Wait) ([]WaitingTile, int) {
	out := make([]WaitingTile, 0, len(waits))
	total := 0
	for _, w := range waits {
		out = append(out, WaitingTile{
			Tile:      w.Tile.String(),
			Index:     int(w.Tile),
			Name:      w.Tile.Name(),
			Remaining: w.Remaining,
		})
		total += w.Remaining
	}
	return out, total
}
