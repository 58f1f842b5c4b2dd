package api

import (
	"context"
	"encoding/json"
	"fmt"

	"paili/engine/analysis"
	"paili/framework/node"
)

type natsAnalyzeRequest struct {
	Hand    string           `json:"hand"`
	Options analysis.Options `json:"options"`
}

// NatsHandlers 聊天机器人节点通过 nats 请求分析
func (h *Handlers) NatsHandlers(subject string) node.LogicHandler {
	return node.LogicHandler{
		subject: h.natsAnalyze,
	}
}

func (h *Handlers) natsAnalyze(ctx context.Context, data json.RawMessage) (any, error) {
	req := natsAnalyzeRequest{Options: analysis.DefaultOptions()}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", node.ErrInvalidMessage, err)
	}
	res, err := h.svc.Analyze(ctx, req.Hand, req.Options)
	return res, err
}
