package node

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu         sync.Mutex
	subscribed map[string]chan *nats.Msg
	closed     bool
}

func (f *fakeClient) subscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribed)
}

func (f *fakeClient) QueueSubscribe(subject, queue string, msgs chan *nats.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribed == nil {
		f.subscribed = make(map[string]chan *nats.Msg)
	}
	f.subscribed[subject] = msgs
	return nil
}

func (f *fakeClient) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	return nil, ErrNotConnected
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func echo(ctx context.Context, data json.RawMessage) (any, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeReply(t *testing.T, raw []byte) Reply {
	t.Helper()
	var r Reply
	require.NoError(t, json.Unmarshal(raw, &r))
	return r
}

func TestProcess(t *testing.T) {
	w := NewNatsWorker(&fakeClient{}, "q", 2)
	w.RegisterHandlers(LogicHandler{
		"echo": echo,
		"fail": func(ctx context.Context, data json.RawMessage) (any, error) {
			return map[string]int{"partial": 1}, errors.New("bad hand")
		},
		"panic": func(ctx context.Context, data json.RawMessage) (any, error) {
			panic("boom")
		},
	})
	ctx := context.Background()

	r := decodeReply(t, w.Process(ctx, "echo", []byte(`{"id":"1","data":{"hand":"123m"}}`)))
	assert.Equal(t, "1", r.ID)
	assert.Empty(t, r.Error)
	assert.Equal(t, map[string]any{"hand": "123m"}, r.Data)

	r = decodeReply(t, w.Process(ctx, "fail", []byte(`{"id":"2"}`)))
	assert.Equal(t, "bad hand", r.Error)
	assert.NotNil(t, r.Data)

	r = decodeReply(t, w.Process(ctx, "panic", []byte(`{"id":"3"}`)))
	assert.Contains(t, r.Error, "panic")

	r = decodeReply(t, w.Process(ctx, "missing", []byte(`{"id":"4"}`)))
	assert.Contains(t, r.Error, ErrHandlerMissing.Error())

	r = decodeReply(t, w.Process(ctx, "echo", []byte(`{"data":{}}`)))
	assert.NotEmpty(t, r.ID, "缺少 id 时生成")

	r = decodeReply(t, w.Process(ctx, "echo", []byte(`not json`)))
	assert.Contains(t, r.Error, ErrInvalidMessage.Error())
}

func TestRun(t *testing.T) {
	cli := &fakeClient{}
	w := NewNatsWorker(cli, "q", 1)
	done := make(chan string, 1)
	w.RegisterHandlers(LogicHandler{
		"paili.analyze": func(ctx context.Context, data json.RawMessage) (any, error) {
			done <- string(data)
			return nil, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return cli.subscriptions() == 1 }, time.Second, 10*time.Millisecond)
	w.readChan <- &nats.Msg{Subject: "paili.analyze", Data: []byte(`{"id":"x","data":"123m"}`)}

	select {
	case got := <-done:
		assert.Equal(t, `"123m"`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("处理器未被调用")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run 未退出")
	}

	w.Close()
	assert.True(t, cli.closed)
}
