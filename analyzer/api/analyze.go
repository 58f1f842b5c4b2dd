package api

import (
	"fmt"
	nethttp "net/http"
	"strconv"
	"strings"

	"paili/common/http"
	"paili/common/log"
	"paili/engine/analysis"
	"paili/engine/mahjong"
)

type analyzeRequest struct {
	Hand    string           `json:"hand" binding:"required"`
	Options analysis.Options `json:"options"`
	Format  string           `json:"format"`
}

// AnalyzeHandler POST /api/v1/analyze
func (h *Handlers) AnalyzeHandler(c *http.Context) error {
	req := analyzeRequest{Options: analysis.DefaultOptions()}
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	return h.analyze(c, req)
}

// AnalyzeQueryHandler GET /api/v1/analyze?hand=...&win=5p&seat=E&tsumo=1
func (h *Handlers) AnalyzeQueryHandler(c *http.Context) error {
	hand := c.GetQuery("hand")
	if hand == "" {
		c.BadRequest("缺少 hand 参数")
		return nil
	}
	opts, err := optionsFromQuery(c)
	if err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	return h.analyze(c, analyzeRequest{Hand: hand, Options: opts, Format: c.GetQueryWithDefault("format", "json")})
}

func (h *Handlers) analyze(c *http.Context, req analyzeRequest) error {
	res, err := h.svc.Analyze(c.Request().Context(), req.Hand, req.Options)
	if err != nil && (res == nil || !res.ErrorKind.IsInputError()) {
		log.With("request_id", c.RequestID()).Error("分析失败", "hand", req.Hand, "err", err)
		return err
	}

	if strings.EqualFold(req.Format, "text") {
		status := nethttp.StatusOK
		if err != nil {
			status = nethttp.StatusBadRequest
		}
		c.String(status, "%s", analysis.FormatText(res))
		return nil
	}
	if err != nil {
		c.BadRequestWithData(res.Error, res)
		return nil
	}
	c.Success(res)
	return nil
}

func optionsFromQuery(c *http.Context) (analysis.Options, error) {
	opts := analysis.DefaultOptions()
	opts.WinTile = c.GetQuery("win")
	opts.Dora = c.GetQuery("dora")

	var err error
	if opts.SeatWind, err = mahjong.ParseWind(c.GetQuery("seat")); err != nil {
		return opts, err
	}
	if opts.RoundWind, err = mahjong.ParseWind(c.GetQuery("round")); err != nil {
		return opts, err
	}
	if honba := c.GetQuery("honba"); honba != "" {
		if opts.Honba, err = strconv.Atoi(honba); err != nil {
			return opts, fmt.Errorf("honba 参数错误: %q", honba)
		}
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"tsumo", &opts.Tsumo},
		{"riichi", &opts.Riichi},
		{"double_riichi", &opts.DoubleRiichi},
		{"ippatsu", &opts.Ippatsu},
		{"haitei", &opts.Haitei},
		{"houtei", &opts.Houtei},
		{"rinshan", &opts.Rinshan},
		{"chankan", &opts.Chankan},
		{"tenhou", &opts.Tenhou},
		{"chiihou", &opts.Chiihou},
	}
	for _, f := range flags {
		v := c.GetQuery(f.name)
		if v == "" {
			continue
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return opts, fmt.Errorf("%s 参数错误: %q", f.name, v)
		}
		*f.dst = b
	}
	return opts, nil
}

// ShantenHandler GET /api/v1/shanten?hand=
func (h *Handlers) ShantenHandler(c *http.Context) error {
	hand := c.GetQuery("hand")
	if hand == "" {
		c.BadRequest("缺少 hand 参数")
		return nil
	}
	sh, err := h.svc.Shanten(c.Request().Context(), hand)
	if err != nil {
		c.BadRequest(err.Error())
		return nil
	}
	c.Success(map[string]any{
		"hand":    hand,
		"shanten": sh,
	})
	return nil
}

// LabelsHandler 当前生效的役种显示名
func (h *Handlers) LabelsHandler(c *http.Context) error {
	c.Success(h.svc.Labels())
	return nil
}
