package node

import (
	"context"
	"encoding/json"
)

// LogicFunc 处理一条请求，返回值序列化后作为 Reply.Data
type LogicFunc func(ctx context.Context, data json.RawMessage) (any, error)

// LogicHandler subject -> 处理函数
type LogicHandler map[string]LogicFunc

// Request 请求信封，ID 由调用方生成并原样带回
type Request struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Reply 应答信封，Error 非空时 Data 可能仍带有部分结果
type Reply struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}
