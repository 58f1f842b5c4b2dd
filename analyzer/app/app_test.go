package app

import (
	"context"
	"testing"
	"time"

	"paili/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesOf(t *testing.T) {
	r := RulesOf(config.RulesConf{AkaDora: true, KazoeYakuman: true})
	assert.True(t, r.AkaDora)
	assert.False(t, r.DoubleWindFu)
	assert.True(t, r.KazoeYakuman)
	assert.False(t, r.DoubleYakuman)
}

func TestRunStopsWithContext(t *testing.T) {
	cfg := config.AnalyzerConfiguration{
		HttpPort:  0,
		CacheConf: config.CacheConf{MaxCost: 100, TtlSeconds: 60},
	}
	cfg.ID = "analyzer-test"

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run 未在 ctx 结束后退出")
	}
}
