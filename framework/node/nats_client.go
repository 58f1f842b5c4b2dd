package node

import (
	"context"
	"time"

	"paili/common/log"

	"github.com/nats-io/nats.go"
)

type Client interface {
	QueueSubscribe(subject, queue string, msgs chan *nats.Msg) error
	Request(ctx context.Context, subject string, data []byte) ([]byte, error)
	Close() error
}

type NatsClient struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

// NewNatsClient 连接 nats，断线后无限重连
func NewNatsClient(url, name string) (*NatsClient, error) {
	log.Info("nats 正在连接, url:%s", url)
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats 连接断开: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats 重连成功, url:%s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return nil, err
	}
	log.Info("nats 连接成功, url:%s", url)
	return &NatsClient{conn: conn}, nil
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

// QueueSubscribe 同一 queue 内的多个节点分摊请求
func (nc *NatsClient) QueueSubscribe(subject, queue string, msgs chan *nats.Msg) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	sub, err := nc.conn.ChanQueueSubscribe(subject, queue, msgs)
	if err != nil {
		log.Error("nats sub err:%v", err)
		return err
	}
	nc.subs = append(nc.subs, sub)
	return nil
}

func (nc *NatsClient) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	if !nc.IsConnected() {
		return nil, ErrNotConnected
	}
	msg, err := nc.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, err
	}
	return msg.Data, nil
}

// Close 先 drain 订阅，让已收到的请求处理完
func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	for _, sub := range nc.subs {
		_ = sub.Drain()
	}
	nc.conn.Close()
	log.Info("NATS 连接已关闭")
	return nil
}
