package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"paili/analyzer/app"
	"paili/common/config"
	"paili/common/log"
	"paili/engine/analysis"
	"paili/engine/mahjong"
	"paili/engine/scoring"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "analyzer",
		Short:         "analyzer 牌理分析服务",
		Long:          `analyzer 牌理分析服务：向听、进张、听牌与和了点数`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newAnalyzeCmd(), newGenerateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 与 nats 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configFile); err != nil {
				return fmt.Errorf("文件配置发生错误：%w", err)
			}
			cfg := config.Get()
			log.InitLog(cfg.ID, cfg.LogConf.Level)
			log.Info("配置文件: %+v", cfg)
			if cfg.MetricPort > 0 {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", cfg.MetricPort)
			}
			return app.Run(context.Background(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	_ = cmd.MarkFlagRequired("configFile")
	return cmd
}

type analyzeFlags struct {
	win, seat, round, dora string
	honba                  int
	tsumo, riichi          bool
	doubleRiichi, ippatsu  bool
	haitei, houtei         bool
	rinshan, chankan       bool
	tenhou, chiihou        bool
	noAka                  bool
	asJSON                 bool
}

func (f *analyzeFlags) options() (analysis.Options, error) {
	opts := analysis.DefaultOptions()
	var err error
	if opts.SeatWind, err = mahjong.ParseWind(f.seat); err != nil {
		return opts, err
	}
	if opts.RoundWind, err = mahjong.ParseWind(f.round); err != nil {
		return opts, err
	}
	opts.WinTile = f.win
	opts.Dora = f.dora
	opts.Honba = f.honba
	opts.Tsumo = f.tsumo
	opts.Riichi = f.riichi
	opts.DoubleRiichi = f.doubleRiichi
	opts.Ippatsu = f.ippatsu
	opts.Haitei = f.haitei
	opts.Houtei = f.houtei
	opts.Rinshan = f.rinshan
	opts.Chankan = f.chankan
	opts.Tenhou = f.tenhou
	opts.Chiihou = f.chiihou
	return opts, nil
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <hand>",
		Short: "分析一手牌，如 123456789m123p1s",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			rules := scoring.DefaultRules()
			rules.AkaDora = !f.noAka
			a := analysis.NewAnalyzer(analysis.WithRules(rules))

			// 允许手牌中间带空格
			res, aerr := a.AnalyzeWith(strings.Join(args, ""), opts)
			if err := writeResult(cmd.OutOrStdout(), res, f.asJSON); err != nil {
				return err
			}
			return aerr
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.win, "win", "", "和了牌，如 5p；默认取第一组数字的最后一张")
	fl.StringVar(&f.seat, "seat", "", "自风 E/S/W/N")
	fl.StringVar(&f.round, "round", "", "场风 E/S/W/N")
	fl.StringVar(&f.dora, "dora", "", "宝牌指示牌，如 3m7z")
	fl.IntVar(&f.honba, "honba", 0, "本场数")
	fl.BoolVar(&f.tsumo, "tsumo", false, "自摸")
	fl.BoolVar(&f.riichi, "riichi", false, "立直")
	fl.BoolVar(&f.doubleRiichi, "double-riichi", false, "两立直")
	fl.BoolVar(&f.ippatsu, "ippatsu", false, "一发")
	fl.BoolVar(&f.haitei, "haitei", false, "海底摸月")
	fl.BoolVar(&f.houtei, "houtei", false, "河底捞鱼")
	fl.BoolVar(&f.rinshan, "rinshan", false, "岭上开花")
	fl.BoolVar(&f.chankan, "chankan", false, "抢杠")
	fl.BoolVar(&f.tenhou, "tenhou", false, "天和")
	fl.BoolVar(&f.chiihou, "chiihou", false, "地和")
	fl.BoolVar(&f.noAka, "no-aka", false, "不计赤宝牌")
	fl.BoolVar(&f.asJSON, "json", false, "输出 JSON")
	return cmd
}

func writeResult(w io.Writer, res *analysis.HandAnalysisResult, asJSON bool) error {
	if !asJSON {
		_, err := io.WriteString(w, analysis.FormatText(res))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

func newGenerateCmd() *cobra.Command {
	var (
		count int
		seed  uint64
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成有役的和了手牌（猜牌题库）",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count 必须大于 0: %d", count)
			}
			hands, err := analysis.NewGenerator(analysis.NewAnalyzer(), seed).Generate(count)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(hands); err != nil {
				return err
			}
			if out != "" {
				log.Info("已生成 %d 手牌: %s", len(hands), out)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 100, "生成数量")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "随机种子，相同种子结果相同")
	cmd.Flags().StringVar(&out, "out", "", "输出文件，默认标准输出")
	return cmd
}
