package scoring

// calculateFu 计算符数
func calculateFu(ctx *YakuContext, pinfu bool) int {
	arr := ctx.arr
	if arr.shape == ShapeChiitoi {
		return 25
	}

	// 平和固定：自摸20符，荣和30符
	if pinfu {
		if ctx.Win.IsTsumo {
			return 20
		}
		return 30
	}

	fu := 20 // 副底
	if ctx.Win.IsTsumo {
		fu += 2
	} else {
		fu += 10 // 门前清荣和
	}
	if arr.shape == ShapeKokushi {
		return roundUpTo10(fu)
	}

	fu += waitFu(arr.wait)
	fu += ctx.pairFu()
	for _, m := range arr.sets() {
		fu += tripletFu(m)
	}
	return roundUpTo10(fu)
}

func waitFu(w WaitKind) int {
	switch w {
	case WaitKanchan, WaitPenchan, WaitTanki:
		return 2
	}
	return 0
}

// pairFu 雀头符：三元牌2符，自风、场风各2符，连风按规则可叠加为4符
func (ctx *YakuContext) pairFu() int {
	p := ctx.arr.pair
	if p.IsDragon() {
		return 2
	}
	fu := 0
	seat := ctx.Win.SeatWind.Valid() && ctx.Win.SeatWind.Tile() == p
	round := ctx.Win.RoundWind.Valid() && ctx.Win.RoundWind.Tile() == p
	if seat {
		fu += 2
	}
	if round && (!seat || ctx.Rules.DoubleWindFu) {
		fu += 2
	}
	return fu
}

// tripletFu 明刻 中张2/幺九4，暗刻翻倍
func tripletFu(m meld) int {
	if m.kind != setTriplet {
		return 0
	}
	fu := 2
	if m.tile.IsYaochu() {
		fu *= 2
	}
	if !m.open {
		fu *= 2
	}
	return fu
}

func roundUpTo10(x int) int {
	return (x + 9) / 10 * 10
}
