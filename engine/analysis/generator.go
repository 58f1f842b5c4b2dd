package analysis

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"paili/engine/mahjong"
)

var ErrGenerateExhausted = errors.New("达到最大尝试次数，生成数量不足")

const defaultMaxAttempts = 1000000

type GeneratedYaku struct {
	Name string `json:"name"`
	Han  int    `json:"han"`
}

// GeneratedHand 猜牌游戏的题目
type GeneratedHand struct {
	Hand      string          `json:"hand"`
	WinTile   string          `json:"win_tile"`
	RoundWind string          `json:"round_wind"`
	SeatWind  string          `json:"seat_wind"`
	Han       int             `json:"han"`
	Fu        int             `json:"fu"`
	Yaku      []GeneratedYaku `json:"yaku"`
}

// Generator 随机生成有役的和了手牌，同一种子结果相同。不可并发使用。
type Generator struct {
	analyzer    *Analyzer
	rng         *rand.Rand
	maxAttempts int
}

func NewGenerator(a *Analyzer, seed uint64) *Generator {
	return &Generator{
		analyzer:    a,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxAttempts: defaultMaxAttempts,
	}
}

func (g *Generator) WithMaxAttempts(n int) *Generator {
	g.maxAttempts = n
	return g
}

// Generate 生成 n 手；尝试次数耗尽时返回已生成部分和 ErrGenerateExhausted
func (g *Generator) Generate(n int) ([]GeneratedHand, error) {
	out := make([]GeneratedHand, 0, n)
	attempts := 0
	for len(out) < n {
		if attempts >= g.maxAttempts {
			return out, ErrGenerateExhausted
		}
		attempts++
		if hand, ok := g.try(); ok {
			out = append(out, hand)
			attempts = 0
		}
	}
	return out, nil
}

func (g *Generator) try() (GeneratedHand, bool) {
	text := g.randomHand()
	tiles, err := mahjong.ParseTiles(text)
	if err != nil || len(tiles) != 14 {
		return GeneratedHand{}, false
	}
	if _, err := mahjong.Hand34FromTiles(tiles); err != nil {
		return GeneratedHand{}, false
	}

	win := tiles[g.rng.IntN(len(tiles))]
	opts := DefaultOptions()
	opts.WinTile = win.String()
	opts.RoundWind = mahjong.Wind(g.rng.IntN(2))
	opts.SeatWind = mahjong.Wind(g.rng.IntN(4))

	res, err := g.analyzer.AnalyzeWith(text, opts)
	if err != nil || res.HandValue == nil || !res.HandValue.Success || res.HandValue.Han == 0 {
		return GeneratedHand{}, false
	}

	v := res.HandValue
	out := GeneratedHand{
		Hand:      text,
		WinTile:   v.WinTile,
		RoundWind: opts.RoundWind.String(),
		SeatWind:  opts.SeatWind.String(),
		Han:       v.Han,
		Fu:        v.Fu,
		Yaku:      make([]GeneratedYaku, 0, len(v.Yaku)),
	}
	for _, y := range v.Yaku {
		out.Yaku = append(out.Yaku, GeneratedYaku{Name: y.Name, Han: y.Han})
	}
	return out, true
}

// randomHand 4面子1雀头：数牌面子八成是顺子，字牌只做刻子
func (g *Generator) randomHand() string {
	var parts [4][]int
	rankOf := func(suit int) int {
		if suit == mahjong.SuitHonors {
			return 1 + g.rng.IntN(7)
		}
		return 1 + g.rng.IntN(9)
	}

	head := g.rng.IntN(4)
	r := rankOf(head)
	parts[head] = append(parts[head], r, r)

	for i := 0; i < 4; i++ {
		suit := g.rng.IntN(4)
		if suit != mahjong.SuitHonors && g.rng.Float64() < 0.8 {
			start := 1 + g.rng.IntN(7)
			parts[suit] = append(parts[suit], start, start+1, start+2)
			continue
		}
		r := rankOf(suit)
		parts[suit] = append(parts[suit], r, r, r)
	}

	var b strings.Builder
	for suit, digits := range parts {
		if len(digits) == 0 {
			continue
		}
		slices.Sort(digits)
		for _, d := range digits {
			b.WriteByte(byte('0' + d))
		}
		b.WriteByte("mpsz"[suit])
	}
	return b.String()
}
