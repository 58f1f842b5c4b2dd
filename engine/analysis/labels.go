package analysis

import (
	"maps"
	"sort"
)

// defaultYakuLabels 役种标识到中文显示名的唯一映射表
var defaultYakuLabels = map[string]string{
	// 一般役
	"Tsumo":                   "自摸",
	"Riichi":                  "立直",
	"Ippatsu":                 "一发",
	"Chankan":                 "枪杠",
	"Rinshan":                 "岭上开花",
	"Haitei":                  "海底捞月",
	"Houtei":                  "河底捞鱼",
	"Pinfu":                   "平和",
	"Tanyao":                  "断幺九",
	"Iipeiko":                 "一杯口",
	"Haku":                    "白",
	"Hatsu":                   "发",
	"Chun":                    "中",
	"Yakuhai (wind of place)": "自风",
	"Yakuhai (wind of round)": "场风",
	"YakuhaiEast":             "东",
	"YakuhaiSouth":            "南",
	"YakuhaiWest":             "西",
	"YakuhaiNorth":            "北",
	"Sanshoku":                "三色同顺",
	"Ittsu":                   "一气通贯",
	"Chiitoitsu":              "七对子",
	"Toitoi":                  "对对和",
	"Sanankou":                "三暗刻",
	"SanKantsu":               "三杠子",
	"Sanshoku Doukou":         "三色同刻",
	"Honitsu":                 "混一色",
	"Junchan":                 "纯全带幺九",
	"Ryanpeikou":              "两杯口",
	"Chinitsu":                "清一色",
	"Renhou":                  "人和",
	"Dora":                    "宝牌",
	"Aka Dora":                "赤宝牌",
	"Honroto":                 "混老头",
	"Shosangen":               "小三元",
	"Open Riichi":             "开立直",
	"Daburu Riichi":           "双立直",
	"Daburu Open Riichi":      "开双立直",
	"Nagashi Mangan":          "流局满贯",
	"Chantai":                 "混全带幺九",

	// 役满
	"Tenhou":                         "天和",
	"Chiihou":                        "地和",
	"Dai Suushii":                    "大四喜",
	"Shousuushii":                    "小四喜",
	"Daisangen":                      "大三元",
	"Suu Ankou":                      "四暗刻",
	"Suu Ankou Tanki":                "四暗刻单骑",
	"Suu Kantsu":                     "四杠子",
	"Ryuuiisou":                      "绿一色",
	"Chinroutou":                     "清老头",
	"Chuuren Poutou":                 "九莲宝灯",
	"Daburu Chuuren Poutou":          "纯正九莲宝灯",
	"Kokushi Musou":                  "国士无双",
	"Kokushi Musou Juusanmen Matchi": "国士无双十三面",
	"Tsuu Iisou":                     "字一色",
	"Daichisei":                      "大七星",
	"Daisharin":                      "大车轮",
	"Renhou (yakuman)":               "人和役满",
}

// Labels 不可变的显示名表，构造后只读，可在多个 goroutine 间共享
type Labels struct {
	m map[string]string
}

func DefaultLabels() *Labels {
	return &Labels{m: maps.Clone(defaultYakuLabels)}
}

// NewLabels 在默认表上叠加覆盖项，空值的覆盖项忽略
func NewLabels(overrides map[string]string) *Labels {
	m := maps.Clone(defaultYakuLabels)
	for k, v := range overrides {
		if v != "" {
			m[k] = v
		}
	}
	return &Labels{m: m}
}

func (l *Labels) Lookup(id string) (string, bool) {
	v, ok := l.m[id]
	return v, ok
}

// Label 未登记的标识原样返回
func (l *Labels) Label(id string) string {
	if v, ok := l.m[id]; ok {
		return v
	}
	return id
}

// Map 返回副本
func (l *Labels) Map() map[string]string {
	return maps.Clone(l.m)
}

func (l *Labels) Keys() []string {
	keys := make([]string, 0, len(l.m))
	for k := range l.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
