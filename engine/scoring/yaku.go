package scoring

import (
	"paili/engine/mahjong"
)

// Yaku 役种
type Yaku int

const (
	// 状况役
	YakuRiichi       Yaku = iota // 立直
	YakuDaburuRiichi             // 双立直
	YakuIppatsu                  // 一发
	YakuMenzenTsumo              // 门前清自摸和
	YakuHaitei                   // 海底捞月
	YakuHoutei                   // 河底捞鱼
	YakuRinshan                  // 岭上开花
	YakuChankan                  // 枪杠

	// 一番
	YakuPinfu     // 平和：4顺子+非役牌雀头，两面听牌
	YakuTanyao    // 断幺九
	YakuIipeiko   // 一杯口
	YakuHaku      // 役牌 白
	YakuHatsu     // 役牌 发
	YakuChun      // 役牌 中
	YakuSeatWind  // 自风
	YakuRoundWind // 场风

	// 二番以上
	YakuSanshoku       // 三色同顺
	YakuIttsu          // 一气通贯
	YakuChantai        // 混全带幺九
	YakuChiitoitsu     // 七对子
	YakuToitoi         // 对对和
	YakuSanankou       // 三暗刻
	YakuSanshokuDoukou // 三色同刻
	YakuShosangen      // 小三元
	YakuHonroto        // 混老头
	YakuJunchan        // 纯全带幺九
	YakuRyanpeikou     // 两杯口
	YakuHonitsu        // 混一色
	YakuChinitsu       // 清一色

	// 役满
	YakuTenhou        // 天和
	YakuChiihou       // 地和
	YakuKokushi       // 国士无双
	YakuKokushi13     // 国士无双十三面（双倍）
	YakuSuuankou      // 四暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）
	YakuDaisangen     // 大三元
	YakuShousuushii   // 小四喜
	YakuDaisuushii    // 大四喜（双倍）
	YakuTsuuiisou     // 字一色
	YakuChinroutou    // 清老头
	YakuRyuuiisou     // 绿一色
	YakuChuuren       // 九莲宝灯
	YakuJunseiChuuren // 纯正九莲宝灯（双倍）

	// 宝牌不是役，不能单独成立
	YakuDora
	YakuAkaDora

	yakuCount
)

// yakuIDs 对外的役种标识，与显示名映射表的键一致
var yakuIDs = [yakuCount]string{
	YakuRiichi:         "Riichi",
	YakuDaburuRiichi:   "Daburu Riichi",
	YakuIppatsu:        "Ippatsu",
	YakuMenzenTsumo:    "Tsumo",
	YakuHaitei:         "Haitei",
	YakuHoutei:         "Houtei",
	YakuRinshan:        "Rinshan",
	YakuChankan:        "Chankan",
	YakuPinfu:          "Pinfu",
	YakuTanyao:         "Tanyao",
	YakuIipeiko:        "Iipeiko",
	YakuHaku:           "Haku",
	YakuHatsu:          "Hatsu",
	YakuChun:           "Chun",
	YakuSeatWind:       "Yakuhai (wind of place)",
	YakuRoundWind:      "Yakuhai (wind of round)",
	YakuSanshoku:       "Sanshoku",
	YakuIttsu:          "Ittsu",
	YakuChantai:        "Chantai",
	YakuChiitoitsu:     "Chiitoitsu",
	YakuToitoi:         "Toitoi",
	YakuSanankou:       "Sanankou",
	YakuSanshokuDoukou: "Sanshoku Doukou",
	YakuShosangen:      "Shosangen",
	YakuHonroto:        "Honroto",
	YakuJunchan:        "Junchan",
	YakuRyanpeikou:     "Ryanpeikou",
	YakuHonitsu:        "Honitsu",
	YakuChinitsu:       "Chinitsu",
	YakuTenhou:         "Tenhou",
	YakuChiihou:        "Chiihou",
	YakuKokushi:        "Kokushi Musou",
	YakuKokushi13:      "Kokushi Musou Juusanmen Matchi",
	YakuSuuankou:       "Suu Ankou",
	YakuSuuankouTanki:  "Suu Ankou Tanki",
	YakuDaisangen:      "Daisangen",
	YakuShousuushii:    "Shousuushii",
	YakuDaisuushii:     "Dai Suushii",
	YakuTsuuiisou:      "Tsuu Iisou",
	YakuChinroutou:     "Chinroutou",
	YakuRyuuiisou:      "Ryuuiisou",
	YakuChuuren:        "Chuuren Poutou",
	YakuJunseiChuuren:  "Daburu Chuuren Poutou",
	YakuDora:           "Dora",
	YakuAkaDora:        "Aka Dora",
}

func (y Yaku) String() string {
	if y < 0 || y >= yakuCount {
		return "Unknown"
	}
	return yakuIDs[y]
}

// AllYaku 全部役种，按定义顺序
func AllYaku() []Yaku {
	out := make([]Yaku, 0, yakuCount)
	for y := Yaku(0); y < yakuCount; y++ {
		out = append(out, y)
	}
	return out
}

// YakuContext 单一拆解方式下的判定上下文
type YakuContext struct {
	Hand  mahjong.Hand34
	Win   *Context
	Rules Rules

	arr *arrangement
}

type YakuChecker interface {
	ID() Yaku
	Check(ctx *YakuContext) (int, int)
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(ctx *YakuContext) (int, int)
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(ctx *YakuContext) (int, int) { return f.check(ctx) }

func hanIf(n int, ok bool) (int, int) {
	if ok {
		return n, 0
	}
	return 0, 0
}

func yakuman(mult int, ok bool) (int, int) {
	if ok {
		return 0, mult
	}
	return 0, 0
}

// YakuRegistry 判定顺序即输出顺序
var YakuRegistry = []YakuChecker{
	// 役满
	yakuCheckerFunc{id: YakuTenhou, check: func(ctx *YakuContext) (int, int) { return yakuman(1, ctx.Win.IsTenhou) }},
	yakuCheckerFunc{id: YakuChiihou, check: func(ctx *YakuContext) (int, int) { return yakuman(1, ctx.Win.IsChiihou) }},
	yakuCheckerFunc{id: YakuKokushi13, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.arr.shape == ShapeKokushi && ctx.Hand[ctx.Win.WinTile] == 2)
	}},
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.arr.shape == ShapeKokushi && ctx.Hand[ctx.Win.WinTile] != 2)
	}},
	yakuCheckerFunc{id: YakuSuuankouTanki, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.closedTriplets() == 4 && ctx.arr.wait == WaitTanki)
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.closedTriplets() == 4 && ctx.arr.wait != WaitTanki)
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.tripletsWhere(mahjong.TileType.IsDragon) == 3)
	}},
	yakuCheckerFunc{id: YakuDaisuushii, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.tripletsWhere(mahjong.TileType.IsWind) == 4)
	}},
	yakuCheckerFunc{id: YakuShousuushii, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.tripletsWhere(mahjong.TileType.IsWind) == 3 && ctx.arr.pair.IsWind())
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.allTiles(mahjong.TileType.IsHonor))
	}},
	yakuCheckerFunc{id: YakuChinroutou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.allTiles(mahjong.TileType.IsTerminal))
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.allTiles(isGreen))
	}},
	yakuCheckerFunc{id: YakuJunseiChuuren, check: func(ctx *YakuContext) (int, int) {
		ok, junsei := checkChuuren(ctx)
		return yakuman(2, ok && junsei)
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(ctx *YakuContext) (int, int) {
		ok, junsei := checkChuuren(ctx)
		return yakuman(1, ok && !junsei)
	}},

	// 状况役
	yakuCheckerFunc{id: YakuDaburuRiichi, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.Win.IsDoubleRiichi) }},
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) (int, int) {
		return hanIf(1, ctx.Win.IsRiichi && !ctx.Win.IsDoubleRiichi)
	}},
	yakuCheckerFunc{id: YakuIppatsu, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsIppatsu) }},
	yakuCheckerFunc{id: YakuMenzenTsumo, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsTsumo) }},
	yakuCheckerFunc{id: YakuHaitei, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsHaitei) }},
	yakuCheckerFunc{id: YakuHoutei, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsHoutei) }},
	yakuCheckerFunc{id: YakuRinshan, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsRinshan) }},
	yakuCheckerFunc{id: YakuChankan, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.Win.IsChankan) }},

	// 一番
	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.isPinfu()) }},
	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) (int, int) {
		return hanIf(1, ctx.allTiles(func(t mahjong.TileType) bool { return !t.IsYaochu() }))
	}},
	yakuCheckerFunc{id: YakuIipeiko, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.peikou() == 1) }},
	yakuCheckerFunc{id: YakuHaku, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.hasTriplet(mahjong.White)) }},
	yakuCheckerFunc{id: YakuHatsu, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.hasTriplet(mahjong.Green)) }},
	yakuCheckerFunc{id: YakuChun, check: func(ctx *YakuContext) (int, int) { return hanIf(1, ctx.hasTriplet(mahjong.Red)) }},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) (int, int) {
		w := ctx.Win.SeatWind
		return hanIf(1, w.Valid() && ctx.hasTriplet(w.Tile()))
	}},
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) (int, int) {
		w := ctx.Win.RoundWind
		return hanIf(1, w.Valid() && ctx.hasTriplet(w.Tile()))
	}},

	// 二番以上
	yakuCheckerFunc{id: YakuChiitoitsu, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.arr.shape == ShapeChiitoi) }},
	yakuCheckerFunc{id: YakuSanshoku, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.sanshoku(setSequence)) }},
	yakuCheckerFunc{id: YakuIttsu, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.ittsu()) }},
	yakuCheckerFunc{id: YakuChantai, check: func(ctx *YakuContext) (int, int) {
		return hanIf(2, ctx.outsideHand() && ctx.hasHonor())
	}},
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) (int, int) {
		return hanIf(3, ctx.outsideHand() && !ctx.hasHonor())
	}},
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) (int, int) {
		return hanIf(2, ctx.arr.shape == ShapeStandard && ctx.tripletsWhere(nil) == 4)
	}},
	yakuCheckerFunc{id: YakuSanankou, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.closedTriplets() == 3) }},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: func(ctx *YakuContext) (int, int) { return hanIf(2, ctx.sanshoku(setTriplet)) }},
	yakuCheckerFunc{id: YakuShosangen, check: func(ctx *YakuContext) (int, int) {
		return hanIf(2, ctx.tripletsWhere(mahjong.TileType.IsDragon) == 2 && ctx.arr.pair.IsDragon())
	}},
	yakuCheckerFunc{id: YakuHonroto, check: func(ctx *YakuContext) (int, int) {
		return hanIf(2, ctx.allTiles(mahjong.TileType.IsYaochu) && ctx.hasHonor() && ctx.hasTerminal())
	}},
	yakuCheckerFunc{id: YakuRyanpeikou, check: func(ctx *YakuContext) (int, int) { return hanIf(3, ctx.peikou() == 2) }},
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) (int, int) {
		return hanIf(3, ctx.numberSuits() == 1 && ctx.hasHonor())
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) (int, int) {
		return hanIf(6, ctx.numberSuits() == 1 && !ctx.hasHonor())
	}},
}

// closedTriplets 暗刻数，荣和补成的刻子算明刻
func (ctx *YakuContext) closedTriplets() int {
	n := 0
	for _, m := range ctx.arr.sets() {
		if m.kind == setTriplet && !m.open {
			n++
		}
	}
	return n
}

// tripletsWhere pred 为 nil 时统计全部刻子
func (ctx *YakuContext) tripletsWhere(pred func(mahjong.TileType) bool) int {
	n := 0
	for _, m := range ctx.arr.sets() {
		if m.kind == setTriplet && (pred == nil || pred(m.tile)) {
			n++
		}
	}
	return n
}

func (ctx *YakuContext) hasTriplet(t mahjong.TileType) bool {
	for _, m := range ctx.arr.sets() {
		if m.kind == setTriplet && m.tile == t {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) allTiles(pred func(mahjong.TileType) bool) bool {
	for i, c := range ctx.Hand {
		if c > 0 && !pred(mahjong.TileType(i)) {
			return false
		}
	}
	return true
}

func (ctx *YakuContext) hasHonor() bool {
	for t := mahjong.East; t <= mahjong.Red; t++ {
		if ctx.Hand[t] > 0 {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) hasTerminal() bool {
	for i, c := range ctx.Hand {
		if c > 0 && mahjong.TileType(i).IsTerminal() {
			return true
		}
	}
	return false
}

// numberSuits 用到的数牌花色数
func (ctx *YakuContext) numberSuits() int {
	var used [3]bool
	for i, c := range ctx.Hand {
		t := mahjong.TileType(i)
		if c > 0 && t.IsNumbered() {
			used[t.Suit()] = true
		}
	}
	n := 0
	for _, u := range used {
		if u {
			n++
		}
	}
	return n
}

// valuedTile 役牌：三元牌、自风、场风
func (ctx *YakuContext) valuedTile(t mahjong.TileType) bool {
	if t.IsDragon() {
		return true
	}
	if w := ctx.Win.SeatWind; w.Valid() && w.Tile() == t {
		return true
	}
	if w := ctx.Win.RoundWind; w.Valid() && w.Tile() == t {
		return true
	}
	return false
}

func (ctx *YakuContext) isPinfu() bool {
	if ctx.arr.shape != ShapeStandard || ctx.arr.wait != WaitRyanmen {
		return false
	}
	for _, m := range ctx.arr.sets() {
		if m.kind != setSequence {
			return false
		}
	}
	return !ctx.valuedTile(ctx.arr.pair)
}

// peikou 相同顺子的组数，2 即两杯口
func (ctx *YakuContext) peikou() int {
	var seen [mahjong.NumTileTypes]int
	for _, m := range ctx.arr.sets() {
		if m.kind == setSequence {
			seen[m.tile]++
		}
	}
	n := 0
	for _, c := range seen {
		n += c / 2
	}
	return n
}

func (ctx *YakuContext) sanshoku(kind setKind) bool {
	var has [3][9]bool
	for _, m := range ctx.arr.sets() {
		if m.kind == kind && m.tile.IsNumbered() {
			has[m.tile.Suit()][m.tile.Rank()-1] = true
		}
	}
	for r := 0; r < 9; r++ {
		if has[0][r] && has[1][r] && has[2][r] {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) ittsu() bool {
	var has [3][9]bool
	for _, m := range ctx.arr.sets() {
		if m.kind == setSequence {
			has[m.tile.Suit()][m.tile.Rank()-1] = true
		}
	}
	for s := 0; s < 3; s++ {
		if has[s][0] && has[s][3] && has[s][6] {
			return true
		}
	}
	return false
}

// outsideHand 每组面子和雀头都带幺九，且至少一个顺子
func (ctx *YakuContext) outsideHand() bool {
	if ctx.arr.shape != ShapeStandard || !ctx.arr.pair.IsYaochu() {
		return false
	}
	seq := false
	for _, m := range ctx.arr.sets() {
		switch m.kind {
		case setSequence:
			seq = true
			if r := m.tile.Rank(); r != 1 && r != 7 {
				return false
			}
		case setTriplet:
			if !m.tile.IsYaochu() {
				return false
			}
		}
	}
	return seq
}

func isGreen(t mahjong.TileType) bool {
	switch t {
	case mahjong.So2, mahjong.So3, mahjong.So4, mahjong.So6, mahjong.So8, mahjong.Green:
		return true
	}
	return false
}

// checkChuuren 九莲宝灯；第二个返回值为纯正九莲（去掉和了牌正好是 1112345678999）
func checkChuuren(ctx *YakuContext) (bool, bool) {
	if ctx.arr.shape != ShapeStandard || ctx.numberSuits() != 1 || ctx.hasHonor() {
		return false, false
	}
	win := ctx.Win.WinTile
	suit := win.Suit()
	base := [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}
	var c9 [9]uint8
	copy(c9[:], ctx.Hand[suit*9:suit*9+9])
	for i := range base {
		if c9[i] < base[i] {
			return false, false
		}
	}
	c9[win.Rank()-1]--
	return true, c9 == base
}
