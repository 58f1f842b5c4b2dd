package scoring

import (
	"fmt"

	"paili/engine/mahjong"
)

type YakuResult struct {
	Yaku Yaku
	Han  int
}

// Result 和了的番符与点数。Han 为 0 表示形状和了但无役。
type Result struct {
	Han         int
	Fu          int
	Yaku        []YakuResult
	YakumanMult int
	Limit       Limit
	Cost        Cost
	Shape       Shape
	Wait        WaitKind
}

// Scorer 番符计算
type Scorer interface {
	Score(h mahjong.Hand34, win *Context) (*Result, error)
}

// Calculator 门前清手牌的点数计算
type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

func (c *Calculator) Rules() Rules {
	return c.rules
}

// Score 在所有拆解方式中取点数最高者，同点比番数、再比符数
func (c *Calculator) Score(h mahjong.Hand34, win *Context) (*Result, error) {
	if win == nil {
		return nil, fmt.Errorf("%w: 缺少和了状况", ErrInvalidContext)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if n := h.Count(); n != 14 {
		return nil, fmt.Errorf("%w: %d张", ErrHandNotComplete, n)
	}
	if err := win.validate(); err != nil {
		return nil, err
	}
	if h[win.WinTile] == 0 {
		return nil, fmt.Errorf("%w: %s", ErrWinTileNotInHand, win.WinTile)
	}

	arrs := arrangements(h, win.WinTile, win.IsTsumo)
	if len(arrs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrHandNotComplete, h)
	}

	var best *Result
	for i := range arrs {
		r := c.evaluate(h, win, &arrs[i])
		if best == nil || better(r, best) {
			best = r
		}
	}
	if best.Han == 0 {
		return &Result{Yaku: []YakuResult{}, Shape: best.Shape, Wait: best.Wait}, nil
	}
	return best, nil
}

func better(a, b *Result) bool {
	if a.Cost.Total != b.Cost.Total {
		return a.Cost.Total > b.Cost.Total
	}
	if a.Han != b.Han {
		return a.Han > b.Han
	}
	return a.Fu > b.Fu
}

func (c *Calculator) evaluate(h mahjong.Hand34, win *Context, arr *arrangement) *Result {
	ctx := &YakuContext{Hand: h, Win: win, Rules: c.rules, arr: arr}

	var normal, limit []YakuResult
	yakumanMult := 0
	han := 0
	pinfu := false
	for _, checker := range YakuRegistry {
		n, mult := checker.Check(ctx)
		switch {
		case mult > 0:
			if !c.rules.DoubleYakuman {
				mult = 1
			}
			yakumanMult += mult
			limit = append(limit, YakuResult{Yaku: checker.ID(), Han: 13 * mult})
		case n > 0:
			han += n
			normal = append(normal, YakuResult{Yaku: checker.ID(), Han: n})
			if checker.ID() == YakuPinfu {
				pinfu = true
			}
		}
	}

	fu := calculateFu(ctx, pinfu)
	r := &Result{Fu: fu, Shape: arr.shape, Wait: arr.wait}

	if yakumanMult > 0 {
		r.Yaku = limit
		r.YakumanMult = yakumanMult
		r.Han = 13 * yakumanMult
	} else {
		if han == 0 {
			return &Result{Shape: arr.shape, Wait: arr.wait}
		}
		// 宝牌只在有役时计入
		if dora := c.countDora(h, win); dora > 0 {
			normal = append(normal, YakuResult{Yaku: YakuDora, Han: dora})
			han += dora
		}
		if c.rules.AkaDora && win.AkaDora > 0 {
			normal = append(normal, YakuResult{Yaku: YakuAkaDora, Han: win.AkaDora})
			han += win.AkaDora
		}
		r.Yaku = normal
		r.Han = han
	}

	base, lim := basePoints(r.Han, r.Fu, r.YakumanMult, c.rules)
	r.Limit = lim
	r.Cost = calculateCost(base, win.IsDealer(), win.IsTsumo, win.Honba)
	return r
}

func (c *Calculator) countDora(h mahjong.Hand34, win *Context) int {
	n := 0
	for _, ind := range win.DoraIndicators {
		n += int(h[ind.Next()])
	}
	return n
}
