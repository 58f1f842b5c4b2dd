package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurstAndRefill(t *testing.T) {
	rl := NewRateLimiter(10, 3)
	start := rl.lastRefill

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allowAt(start), "突发内第 %d 次", i)
	}
	assert.False(t, rl.allowAt(start))

	// 100ms 补充 1 个令牌
	assert.True(t, rl.allowAt(start.Add(100*time.Millisecond)))
	assert.False(t, rl.allowAt(start.Add(100*time.Millisecond)))

	// 补充不超过容量
	later := start.Add(10 * time.Second)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.allowAt(later))
	}
	assert.False(t, rl.allowAt(later))
}

func TestKeyedLimiter(t *testing.T) {
	k := NewKeyedLimiter(1, 1, time.Minute)
	assert.True(t, k.Allow("a"))
	assert.False(t, k.Allow("a"))
	assert.True(t, k.Allow("b"), "不同 key 互不影响")
	assert.Equal(t, 2, k.Len())
}
