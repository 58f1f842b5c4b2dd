package analysis

import (
	"fmt"

	"paili/engine/mahjong"
	"paili/engine/scoring"
)

// evaluateWin 调用计分依赖并翻译役种名。依赖返回错误或 panic 都只记在这一项上。
func (a *Analyzer) evaluateWin(h mahjong.Hand34, ctx *scoring.Context) (out *HandValueResult) {
	out = &HandValueResult{WinTile: ctx.WinTile.String(), Yaku: []YakuItem{}}
	defer func() {
		if r := recover(); r != nil {
			out = dependencyFailure(out.WinTile, fmt.Errorf("%w: %v", ErrDependency, r))
		}
	}()

	r, err := a.scorer.Score(h, ctx)
	if err != nil {
		return dependencyFailure(out.WinTile, fmt.Errorf("%w: %w", ErrDependency, err))
	}
	if r == nil || r.Han < 0 || (r.Han > 0 && len(r.Yaku) == 0) {
		return dependencyFailure(out.WinTile, fmt.Errorf("%w: 返回数据不完整", ErrDependency))
	}

	out.Success = true
	if r.Han == 0 {
		// 和了形但无役
		return out
	}
	out.Han = r.Han
	out.Fu = r.Fu
	out.Cost = r.Cost
	out.YakumanMult = r.YakumanMult
	out.Limit = string(r.Limit)
	out.IsYakuman = r.Han >= 13
	for _, y := range r.Yaku {
		id := y.Yaku.String()
		out.Yaku = append(out.Yaku, YakuItem{ID: id, Name: a.labels.Label(id), Han: y.Han})
	}
	return out
}

func dependencyFailure(win string, err error) *HandValueResult {
	return &HandValueResult{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: ErrorKindDependency,
		WinTile:   win,
		Yaku:      []YakuItem{},
	}
}
