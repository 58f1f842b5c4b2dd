package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxCost: 最多缓存的条目数，每条成本为 1
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	if maxCost <= 0 {
		return nil, fmt.Errorf("maxCost 必须大于 0: %d", maxCost)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // 官方建议为条目数的 10 倍
		MaxCost:     maxCost,
		BufferItems: 64,

		// 成本按条目数计，不叠加内部结构体大小
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL。写入是异步的，返回 false 表示被丢弃
func (c *GeneralCache) Set(key string, value any) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

func (c *GeneralCache) SetWithTTL(key string, value any, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

func (c *GeneralCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Clear 清空缓存，标签热更新后旧结果全部失效
func (c *GeneralCache) Clear() {
	c.cache.Clear()
}

// Wait 等待缓冲区中的写入生效
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

func (c *GeneralCache) Close() {
	c.cache.Close()
}

// Typed 在 GeneralCache 之上按类型取值
type Typed[T any] struct {
	*GeneralCache
}

func NewTyped[T any](maxCost int64, ttl time.Duration) (*Typed[T], error) {
	c, err := NewGeneralCache(maxCost, ttl)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{GeneralCache: c}, nil
}

func (c *Typed[T]) Get(key string) (T, bool) {
	var zero T
	value, ok := c.GeneralCache.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Typed[T]) Set(key string, value T) bool {
	return c.GeneralCache.Set(key, value)
}
