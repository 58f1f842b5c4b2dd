package node

import (
	"context"
	"encoding/json"
	"fmt"

	"paili/common/log"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/semaphore"
)

type NatsWorker struct {
	NatsCli  Client
	queue    string
	readChan chan *nats.Msg
	sem      *semaphore.Weighted
	limit    int64
	handlers LogicHandler
}

// NewNatsWorker concurrency 为同时处理的请求上限
func NewNatsWorker(cli Client, queue string, concurrency int) *NatsWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &NatsWorker{
		NatsCli:  cli,
		queue:    queue,
		readChan: make(chan *nats.Msg, 1024),
		sem:      semaphore.NewWeighted(int64(concurrency)),
		limit:    int64(concurrency),
		handlers: make(LogicHandler),
	}
}

func (worker *NatsWorker) RegisterHandlers(handlers LogicHandler) {
	for subject, h := range handlers {
		worker.handlers[subject] = h
	}
}

// Run 订阅所有已注册的 subject，阻塞直到 ctx 结束
func (worker *NatsWorker) Run(ctx context.Context) error {
	for subject := range worker.handlers {
		if err := worker.NatsCli.QueueSubscribe(subject, worker.queue, worker.readChan); err != nil {
			return fmt.Errorf("订阅 %s 失败: %w", subject, err)
		}
		log.Info("nats worker 已订阅 %s, queue:%s", subject, worker.queue)
	}

	for {
		select {
		case <-ctx.Done():
			// 等待处理中的请求结束
			_ = worker.sem.Acquire(context.Background(), worker.limit)
			return nil
		case msg := <-worker.readChan:
			if err := worker.sem.Acquire(ctx, 1); err != nil {
				continue
			}
			go func() {
				defer worker.sem.Release(1)
				reply := worker.Process(ctx, msg.Subject, msg.Data)
				if msg.Reply == "" {
					return
				}
				if err := msg.Respond(reply); err != nil {
					log.Error("nats 应答错误, subject:%s, err:%v", msg.Subject, err)
				}
			}()
		}
	}
}

// Process 解析请求信封并调用处理器，始终返回可发送的应答
func (worker *NatsWorker) Process(ctx context.Context, subject string, raw []byte) []byte {
	var req Request
	reply := Reply{}
	if err := json.Unmarshal(raw, &req); err != nil {
		reply.Error = fmt.Errorf("%w: %v", ErrInvalidMessage, err).Error()
		return marshalReply(reply)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	reply.ID = req.ID

	handler := worker.handlers[subject]
	if handler == nil {
		reply.Error = fmt.Errorf("%w: %s", ErrHandlerMissing, subject).Error()
		return marshalReply(reply)
	}

	data, err := worker.call(ctx, handler, req.Data)
	reply.Data = data
	if err != nil {
		reply.Error = err.Error()
	}
	return marshalReply(reply)
}

func (worker *NatsWorker) call(ctx context.Context, handler LogicFunc, data json.RawMessage) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("nats 处理器 panic: %v", r)
			result, err = nil, fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, data)
}

func marshalReply(reply Reply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		data, _ = json.Marshal(Reply{ID: reply.ID, Error: err.Error()})
	}
	return data
}

func (worker *NatsWorker) Close() {
	if worker.NatsCli != nil {
		_ = worker.NatsCli.Close()
	}
}
