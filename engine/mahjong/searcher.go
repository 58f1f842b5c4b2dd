package mahjong

// suitTable [雀头数][面子数] -> 最多搭子数，-1 表示不可达
type suitTable [2][5]int8

func emptyTable() suitTable {
	var t suitTable
	for p := range t {
		for m := range t[p] {
			t[p][m] = -1
		}
	}
	return t
}

// Searcher 一次分析调用独占的搜索状态：回溯用的草稿数组和按花色的结果缓存。
// 不可在多个 goroutine 之间共享，每次顶层调用新建一个即可。
type Searcher struct {
	work        [9]uint8
	numberCache map[[9]uint8]suitTable
	honorCache  map[[9]uint8]suitTable
}

func NewSearcher() *Searcher {
	return &Searcher{
		numberCache: make(map[[9]uint8]suitTable, 256),
		honorCache:  make(map[[9]uint8]suitTable, 64),
	}
}

// Shanten 13 或 14 张手牌的向听数，-1 为和了
func Shanten(h Hand34) (int, error) {
	return NewSearcher().Shanten(h)
}

// Shanten 取一般型、七对子、国士无双三者最小
func (s *Searcher) Shanten(h Hand34) (int, error) {
	if _, err := h.shapeCheck(); err != nil {
		return 0, err
	}
	return s.shanten(&h), nil
}

func (s *Searcher) shanten(h *Hand34) int {
	best := s.rawShanten(h)
	if best != 0 || !h.hasQuad() {
		return best
	}
	// 公式不知道第五张不存在：听的只剩手里已有四张的那种牌时，实际还差一步
	switch h.Count() {
	case 13:
		if !s.hasLiveWait(h) {
			best = 1
		}
	case 14:
		best = s.bestDiscard(h)
	}
	return best
}

func (s *Searcher) rawShanten(h *Hand34) int {
	best := s.ShantenNormal(h)
	if v := ShantenChiitoi(h); v < best {
		best = v
	}
	if v := ShantenKokushi(h); v < best {
		best = v
	}
	return best
}

// hasLiveWait 13 张是否存在一张还摸得到的和了牌
func (s *Searcher) hasLiveWait(h *Hand34) bool {
	for j := 0; j < NumTileTypes; j++ {
		if h[j] >= MaxCopies {
			continue
		}
		h[j]++
		agari := s.rawShanten(h) == -1
		h[j]--
		if agari {
			return true
		}
	}
	return false
}

// bestDiscard 14 张逐一试打，取修正后 13 张向听的最小值
func (s *Searcher) bestDiscard(h *Hand34) int {
	best := 8
	for i := 0; i < NumTileTypes; i++ {
		if h[i] == 0 {
			continue
		}
		h[i]--
		v := s.rawShanten(h)
		if v == 0 && !s.hasLiveWait(h) {
			v = 1
		}
		h[i]++
		if v < best {
			best = v
		}
	}
	return best
}

// IsAgari 14 张是否和了
func (s *Searcher) IsAgari(h Hand34) bool {
	return h.Count() == 14 && s.shanten(&h) == -1
}

func IsAgari(h Hand34) bool {
	return NewSearcher().IsAgari(h)
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h *Hand34) int {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数，四张同种只算一对
func ShantenChiitoi(h *Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < NumTileTypes; i++ {
		if h[i] > 0 {
			unique++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

// ShantenNormal 一般型向听数：sh = 8 - 2m - min(t, 4-m) - p
// 四个花色各自穷举 (雀头, 面子, 搭子) 的组合，再合并取最优，不做贪心。
func (s *Searcher) ShantenNormal(h *Hand34) int {
	total := emptyTable()
	total[0][0] = 0
	for suit := SuitMan; suit <= SuitHonors; suit++ {
		var counts [9]uint8
		n := 9
		if suit == SuitHonors {
			n = 7
		}
		copy(counts[:n], h[suit*9:suit*9+n])
		total = mergeTables(total, s.suitBest(counts, suit == SuitHonors))
	}

	best := 8
	for p := 0; p < 2; p++ {
		for m := 0; m <= 4; m++ {
			t := int(total[p][m])
			if t < 0 {
				continue
			}
			if limit := 4 - m; t > limit {
				t = limit
			}
			if sh := 8 - 2*m - t - p; sh < best {
				best = sh
			}
		}
	}
	return best
}

func mergeTables(a, b suitTable) suitTable {
	out := emptyTable()
	for pa := 0; pa < 2; pa++ {
		for ma := 0; ma <= 4; ma++ {
			if a[pa][ma] < 0 {
				continue
			}
			for pb := 0; pa+pb < 2; pb++ {
				for mb := 0; ma+mb <= 4; mb++ {
					if b[pb][mb] < 0 {
						continue
					}
					t := a[pa][ma] + b[pb][mb]
					if t > 4 {
						t = 4
					}
					if t > out[pa+pb][ma+mb] {
						out[pa+pb][ma+mb] = t
					}
				}
			}
		}
	}
	return out
}

func (s *Searcher) suitBest(counts [9]uint8, honor bool) suitTable {
	cache := s.numberCache
	if honor {
		cache = s.honorCache
	}
	if v, ok := cache[counts]; ok {
		return v
	}
	tbl := emptyTable()
	s.work = counts
	s.dfsSuit(0, 0, 0, 0, honor, &tbl)
	cache[counts] = tbl
	return tbl
}

// dfsSuit 单花色回溯，在 s.work 上原地增减并复原。
// m：面子数、t：搭子数、p：雀头数（0/1）
func (s *Searcher) dfsSuit(pos, m, t, p int, honor bool, tbl *suitTable) {
	if m > 4 {
		return
	}
	t2 := t
	if t2 > 4 {
		t2 = 4
	}
	if int8(t2) > tbl[p][m] {
		tbl[p][m] = int8(t2)
	}

	w := &s.work
	i := pos
	for i < 9 && w[i] == 0 {
		i++
	}
	if i >= 9 {
		return
	}

	// 刻子
	if w[i] >= 3 {
		w[i] -= 3
		s.dfsSuit(i, m+1, t, p, honor, tbl)
		w[i] += 3
	}

	// 顺子
	if !honor && i+2 < 9 && w[i+1] > 0 && w[i+2] > 0 {
		w[i]--
		w[i+1]--
		w[i+2]--
		s.dfsSuit(i, m+1, t, p, honor, tbl)
		w[i]++
		w[i+1]++
		w[i+2]++
	}

	if w[i] >= 2 {
		// 雀头
		if p == 0 {
			w[i] -= 2
			s.dfsSuit(i, m, t, 1, honor, tbl)
			w[i] += 2
		}
		// 对子当搭子（双碰）
		w[i] -= 2
		s.dfsSuit(i, m, t+1, p, honor, tbl)
		w[i] += 2
	}

	if !honor {
		// 两面 / 边张
		if i+1 < 9 && w[i+1] > 0 {
			w[i]--
			w[i+1]--
			s.dfsSuit(i, m, t+1, p, honor, tbl)
			w[i]++
			w[i+1]++
		}
		// 嵌张
		if i+2 < 9 && w[i+2] > 0 {
			w[i]--
			w[i+2]--
			s.dfsSuit(i, m, t+1, p, honor, tbl)
			w[i]++
			w[i+2]++
		}
	}

	// 孤张
	w[i]--
	s.dfsSuit(i, m, t, p, honor, tbl)
	w[i]++
}
