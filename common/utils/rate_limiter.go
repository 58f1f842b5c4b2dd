package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒补充的令牌数
// burst: 桶的容量，即允许的突发请求数
func NewRateLimiter(rate int, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:       float64(rate),
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
}

// Allow 返回 true 表示允许，false 表示拒绝
func (rl *RateLimiter) Allow() bool {
	return rl.allowAt(time.Now())
}

func (rl *RateLimiter) allowAt(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := now.Sub(rl.lastRefill).Seconds()
	if elapsed > 0 {
		rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
		rl.lastRefill = now
	}

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// KeyedLimiter 按 key（如客户端 IP）分别限流
type KeyedLimiter struct {
	rate, burst int
	mu          sync.Mutex
	limiters    map[string]*keyedEntry
	idle        time.Duration
	lastSweep   time.Time
}

type keyedEntry struct {
	limiter  *RateLimiter
	lastSeen time.Time
}

// NewKeyedLimiter idle 时间内没有请求的 key 会被清理
func NewKeyedLimiter(rate, burst int, idle time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		rate:      rate,
		burst:     burst,
		limiters:  make(map[string]*keyedEntry),
		idle:      idle,
		lastSweep: time.Now(),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	now := time.Now()
	k.mu.Lock()
	if now.Sub(k.lastSweep) > k.idle {
		for id, e := range k.limiters {
			if now.Sub(e.lastSeen) > k.idle {
				delete(k.limiters, id)
			}
		}
		k.lastSweep = now
	}
	e, ok := k.limiters[key]
	if !ok {
		e = &keyedEntry{limiter: NewRateLimiter(k.rate, k.burst)}
		k.limiters[key] = e
	}
	e.lastSeen = now
	k.mu.Unlock()

	return e.limiter.Allow()
}

// Len 当前跟踪的 key 数量
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}
