package scoring

import "math"

// Limit 满贯以上的称呼
type Limit string

const (
	LimitNone          Limit = ""
	LimitMangan        Limit = "mangan"
	LimitHaneman       Limit = "haneman"
	LimitBaiman        Limit = "baiman"
	LimitSanbaiman     Limit = "sanbaiman"
	LimitKazoeYakuman  Limit = "kazoe yakuman"
	LimitYakuman       Limit = "yakuman"
	LimitDoubleYakuman Limit = "double yakuman"
	LimitTripleYakuman Limit = "triple yakuman"
)

// Cost 荣和：Main 为放铳者支付；自摸：Main 为庄家（或庄家自摸时每家）支付，Additional 为闲家各自支付
type Cost struct {
	Main       int `json:"main"`
	Additional int `json:"additional"`
	Total      int `json:"total"`
}

func roundUpTo100(x int) int {
	return int(math.Ceil(float64(x)/100.0)) * 100
}

// basePoints 基本点与称呼
func basePoints(han, fu, yakumanMult int, rules Rules) (int, Limit) {
	if yakumanMult > 0 {
		switch yakumanMult {
		case 1:
			return 8000, LimitYakuman
		case 2:
			return 16000, LimitDoubleYakuman
		default:
			return 8000 * yakumanMult, LimitTripleYakuman
		}
	}
	switch {
	case han >= 13 && rules.KazoeYakuman:
		return 8000, LimitKazoeYakuman
	case han >= 11:
		return 6000, LimitSanbaiman
	case han >= 8:
		return 4000, LimitBaiman
	case han >= 6:
		return 3000, LimitHaneman
	case han >= 5:
		return 2000, LimitMangan
	}
	// 基础点数 = 符数 × 2^(2+番数)
	base := fu * (1 << (2 + han))
	if base >= 2000 {
		return 2000, LimitMangan
	}
	return base, LimitNone
}

// calculateCost 付点，本场数荣和+300、自摸每家+100
func calculateCost(base int, dealer, tsumo bool, honba int) Cost {
	if !tsumo {
		mult := 4
		if dealer {
			mult = 6
		}
		main := roundUpTo100(base*mult) + 300*honba
		return Cost{Main: main, Total: main}
	}
	if dealer {
		each := roundUpTo100(base*2) + 100*honba
		return Cost{Main: each, Additional: each, Total: each * 3}
	}
	main := roundUpTo100(base*2) + 100*honba
	other := roundUpTo100(base) + 100*honba
	return Cost{Main: main, Additional: other, Total: main + other*2}
}
