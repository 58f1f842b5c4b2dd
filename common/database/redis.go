package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paili/common/config"
	"paili/common/log"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 键不存在
var ErrCacheMiss = errors.New("redis: 键不存在")

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	prefix     string
}

// NewRedis 建立连接并 ping，失败时返回错误由调用方决定是否降级
func NewRedis(ctx context.Context, redisConf config.RedisConf, prefix string) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	r := &RedisManager{prefix: prefix}
	if len(redisConf.ClusterAddrs) == 0 {
		if redisConf.Addr == "" {
			return nil, fmt.Errorf("redis 配置出错: addr 为空")
		}
		r.Cli = redis.NewClient(&redis.Options{
			Addr:         redisConf.Addr,
			Password:     redisConf.Password, // 如果没有密码，这个字段为空字符串，Redis会忽略
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		r.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	cli, _ := r.GetClient()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return r, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) key(k string) string {
	return r.prefix + k
}

// SetJSON 序列化后写入
func (r *RedisManager) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	return cli.Set(ctx, r.key(key), data, expiration).Err()
}

// GetJSON 读取并反序列化，键不存在时返回 ErrCacheMiss
func (r *RedisManager) GetJSON(ctx context.Context, key string, out any) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	data, err := cli.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("反序列化失败: %w", err)
	}
	return nil
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return cli.Del(ctx, full...).Err()
}

// Ping 健康检查使用
func (r *RedisManager) Ping(ctx context.Context) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Ping(ctx).Err()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
