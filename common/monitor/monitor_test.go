package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	info := Collect(context.Background())
	require.NotNil(t, info)
	assert.Positive(t, info.Goroutines)
	assert.Positive(t, info.HeapAlloc)
	assert.GreaterOrEqual(t, info.MemUsage, 0.0)
	assert.LessOrEqual(t, info.MemUsage, 100.0)
}

func TestMonitorStartStop(t *testing.T) {
	m := NewMonitor(10 * time.Millisecond)
	assert.Nil(t, m.Latest())

	done := make(chan struct{})
	go func() {
		m.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Latest() != nil }, 2*time.Second, 10*time.Millisecond)
	m.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Monitor 未退出")
	}
}

func TestMonitorStopTwice(t *testing.T) {
	m := NewMonitor(time.Hour)
	assert.NotPanics(t, func() {
		m.Stop()
		m.Stop()
	})

	// 已停止的 Monitor 启动后采样一次即返回
	done := make(chan struct{})
	go func() {
		m.Start(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Monitor 未退出")
	}
	assert.NotNil(t, m.Latest())
}
