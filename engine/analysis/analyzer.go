package analysis

import (
	"fmt"

	"paili/engine/mahjong"
	"paili/engine/scoring"
)

// Analyzer 构造后只读，可并发使用；每次分析各自新建搜索状态
type Analyzer struct {
	scorer scoring.Scorer
	labels *Labels
}

type Option func(*Analyzer)

func WithScorer(s scoring.Scorer) Option {
	return func(a *Analyzer) {
		a.scorer = s
	}
}

func WithRules(r scoring.Rules) Option {
	return func(a *Analyzer) {
		a.scorer = scoring.NewCalculator(r)
	}
}

func WithLabels(l *Labels) Option {
	return func(a *Analyzer) {
		a.labels = l
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.scorer == nil {
		a.scorer = scoring.NewCalculator(scoring.DefaultRules())
	}
	if a.labels == nil {
		a.labels = DefaultLabels()
	}
	return a
}

func (a *Analyzer) Labels() *Labels {
	return a.labels
}

// Analyze 默认场况下分析
func (a *Analyzer) Analyze(text string) (*HandAnalysisResult, error) {
	return a.AnalyzeWith(text, DefaultOptions())
}

// AnalyzeWith 解析、算向听，再按张数和向听数分派：
// 14张和了算番符，14张未和了算打牌进张，13张听牌算和了牌，13张未听牌算最优进张。
// 输入错误时返回的结果 Success 为 false 且 error 非空，结果本身总是非 nil。
func (a *Analyzer) AnalyzeWith(text string, opts Options) (*HandAnalysisResult, error) {
	res := &HandAnalysisResult{HandText: text}
	fail := func(err error) (*HandAnalysisResult, error) {
		res.Success = false
		res.Error = err.Error()
		res.ErrorKind = kindOf(err)
		return res, err
	}

	comps := mahjong.ParseHand(text)
	res.Components = comps
	if comps.Empty() {
		return fail(&mahjong.HandError{Kind: mahjong.KindInputShape, Msg: "没有识别到任何牌"})
	}
	h, aka, err := comps.ToHand34()
	if err != nil {
		return fail(err)
	}
	n := h.Count()
	res.TileCount = n
	res.AkaDora = aka
	res.Normalized = h.String()
	if n != 13 && n != 14 {
		return fail(&mahjong.HandError{Kind: mahjong.KindInputShape, Msg: fmt.Sprintf("需要13或14张牌，实际%d张", n)})
	}
	if err := opts.validate(); err != nil {
		return fail(err)
	}

	s := mahjong.NewSearcher()
	sh, err := s.Shanten(h)
	if err != nil {
		return fail(err)
	}
	res.Shanten = &sh

	switch {
	case n == 14 && sh == -1:
		res.HandValue = a.valueOf(h, comps, aka, opts)
	case n == 14:
		res.Ukeire = ukeireOf(s, h)
	case sh == 0:
		res.Waits = waitsOf(s, h)
	default:
		res.Advance = advanceOf(s, h)
	}
	res.Success = true
	return res, nil
}

// Shanten 只算向听数
func (a *Analyzer) Shanten(text string) (int, error) {
	h, _, err := mahjong.ParseHand(text).ToHand34()
	if err != nil {
		return 0, err
	}
	return mahjong.NewSearcher().Shanten(h)
}

func (a *Analyzer) valueOf(h mahjong.Hand34, comps mahjong.HandComponents, aka int, opts Options) *HandValueResult {
	win, explicit, _ := opts.explicitWinTile()
	if !explicit {
		win, _ = comps.DesignatedWinTile()
	}
	dora, _ := opts.doraIndicators()
	return a.evaluateWin(h, opts.scoringContext(win, aka, dora))
}

func ukeireOf(s *mahjong.Searcher, h mahjong.Hand34) *UkeireResult {
	current, opts, err := s.Ukeire14(h)
	if err != nil {
		return &UkeireResult{Error: err.Error(), Options: []DiscardOption{}}
	}
	out := &UkeireResult{Success: true, CurrentShanten: current, Options: make([]DiscardOption, 0, len(opts))}
	for _, o := range opts {
		waits, total := waitingTiles(o.Waits)
		out.Options = append(out.Options, DiscardOption{
			Discard:      o.Discard.String(),
			DiscardIndex: int(o.Discard),
			DiscardName:  o.Discard.Name(),
			Shanten:      o.Shanten,
			Waits:        waits,
			Total:        total,
		})
	}
	return out
}

func waitsOf(s *mahjong.Searcher, h mahjong.Hand34) *WaitsResult {
	waits, err := s.Waits(h)
	if err != nil {
		return &WaitsResult{Error: err.Error(), Waits: []WaitingTile{}}
	}
	tiles, total := waitingTiles(waits)
	return &WaitsResult{Success: true, Waits: tiles, Total: total}
}

func advanceOf(s *mahjong.Searcher, h mahjong.Hand34) *AdvanceResult {
	best, waits, err := s.BestAdvance(h)
	if err != nil {
		return &AdvanceResult{Error: err.Error(), Tiles: []WaitingTile{}}
	}
	tiles, total := waitingTiles(waits)
	return &AdvanceResult{Success: true, ResultShanten: best, Tiles: tiles, Total: total}
}
