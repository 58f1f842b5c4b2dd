package analysis

import (
	"fmt"
	"strings"
)

// FormatText 聊天回复用的纯文本
func FormatText(r *HandAnalysisResult) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	if !r.Success {
		fmt.Fprintf(&b, "分析失败: %s\n", r.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "手牌: %s\n", r.HandText)
	if r.Shanten != nil {
		fmt.Fprintf(&b, "向听数: %s\n", shantenText(*r.Shanten))
	}

	switch {
	case r.HandValue != nil:
		writeHandValue(&b, r.HandValue)
	case r.Waits != nil:
		if !r.Waits.Success {
			fmt.Fprintf(&b, "听牌计算失败: %s\n", r.Waits.Error)
			break
		}
		fmt.Fprintf(&b, "听牌: %s (共%d枚)\n", tileList(r.Waits.Waits), r.Waits.Total)
	case r.Advance != nil:
		if !r.Advance.Success {
			fmt.Fprintf(&b, "进张计算失败: %s\n", r.Advance.Error)
			break
		}
		fmt.Fprintf(&b, "进张: %s (共%d枚，摸入后%s)\n", tileList(r.Advance.Tiles), r.Advance.Total, shantenText(r.Advance.ResultShanten))
	case r.Ukeire != nil:
		if !r.Ukeire.Success {
			fmt.Fprintf(&b, "进张计算失败: %s\n", r.Ukeire.Error)
			break
		}
		for _, o := range r.Ukeire.Options {
			fmt.Fprintf(&b, "打%s 摸[%s] %d枚\n", o.Discard, tileList(o.Waits), o.Total)
		}
	}
	return b.String()
}

func shantenText(sh int) string {
	switch sh {
	case -1:
		return "和了"
	case 0:
		return "听牌"
	default:
		return fmt.Sprintf("%d向听", sh)
	}
}

func tileList(tiles []WaitingTile) string {
	parts := make([]string, 0, len(tiles))
	for _, t := range tiles {
		parts = append(parts, t.Tile)
	}
	return strings.Join(parts, " ")
}

func writeHandValue(b *strings.Builder, v *HandValueResult) {
	if !v.Success {
		fmt.Fprintf(b, "计分失败: %s\n", v.Error)
		return
	}
	if v.Han == 0 {
		b.WriteString("无役，不能和牌\n")
		return
	}
	fmt.Fprintf(b, "和了牌: %s\n", v.WinTile)
	if v.IsYakuman {
		fmt.Fprintf(b, "役满 x%d\n", max(v.YakumanMult, 1))
	} else {
		fmt.Fprintf(b, "番数: %d, 符数: %d\n", v.Han, v.Fu)
	}
	fmt.Fprintf(b, "点数: %d\n", v.Cost.Total)
	b.WriteString("役种:\n")
	for _, y := range v.Yaku {
		fmt.Fprintf(b, "- %s %d番\n", y.Name, y.Han)
	}
}
