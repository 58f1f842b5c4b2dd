package node

import "errors"

// 远程通信错误
var (
	ErrNotConnected   = errors.New("未连接到 nats 服务")
	ErrHandlerMissing = errors.New("处理器未找到")
	ErrInvalidMessage = errors.New("无效的消息")
	ErrWorkerBusy     = errors.New("处理队列已满")
)
