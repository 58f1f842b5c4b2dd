package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	mu             sync.RWMutex
	v              *viper.Viper
	AnalyzerConfig AnalyzerConfiguration
)

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	MetricPort int    `mapstructure:"metricPort"`
}

type AnalyzerConfiguration struct {
	BaseConfig `mapstructure:",squash"`
	LogConf    `mapstructure:"log"`
	HttpPort   int             `mapstructure:"httpPort"`
	CacheConf  CacheConf       `mapstructure:"cache"`
	RedisConf  RedisConf       `mapstructure:"redis"`
	NatsConfig NatsConfig      `mapstructure:"nats"`
	RulesConf  RulesConf       `mapstructure:"rules"`
	RateLimit  RateLimitConf   `mapstructure:"rateLimit"`
	Labels     []LabelOverride `mapstructure:"labels"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// CacheConf 进程内结果缓存，MaxCost 为 0 时关闭
type CacheConf struct {
	MaxCost    int64 `mapstructure:"maxCost"`
	TtlSeconds int   `mapstructure:"ttlSeconds"`
}

// RedisConf Addr 为空时不启用二级缓存
type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	TtlSeconds   int      `mapstructure:"ttlSeconds"`
}

// NatsConfig URL 为空时不接入 nats
type NatsConfig struct {
	URL     string `json:"url" mapstructure:"url"`
	Subject string `json:"subject" mapstructure:"subject"`
}

// RateLimitConf 每个客户端 IP 的令牌桶，Rps 为 0 时不限流
type RateLimitConf struct {
	Rps   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

type RulesConf struct {
	AkaDora       bool `mapstructure:"akaDora"`
	DoubleWindFu  bool `mapstructure:"doubleWindFu"`
	KazoeYakuman  bool `mapstructure:"kazoeYakuman"`
	DoubleYakuman bool `mapstructure:"doubleYakuman"`
}

// LabelOverride 役种显示名覆盖。viper 的键不区分大小写，所以用列表而不是 map
type LabelOverride struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

func (c AnalyzerConfiguration) LabelMap() map[string]string {
	m := make(map[string]string, len(c.Labels))
	for _, l := range c.Labels {
		m[l.ID] = l.Name
	}
	return m
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("id", "analyzer-1")
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 0)
	v.SetDefault("cache.maxCost", 10000)
	v.SetDefault("cache.ttlSeconds", 600)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.minIdleConns", 2)
	v.SetDefault("redis.ttlSeconds", 3600)
	v.SetDefault("nats.subject", "paili.analyze")
	v.SetDefault("rateLimit.rps", 0)
	v.SetDefault("rateLimit.burst", 20)
	v.SetDefault("rules.akaDora", true)
	v.SetDefault("rules.doubleWindFu", true)
	v.SetDefault("rules.kazoeYakuman", true)
	v.SetDefault("rules.doubleYakuman", true)
}

// Load 读取配置文件，环境变量可覆盖（redis.addr -> REDIS_ADDR），NODE_ID 覆盖 id
func Load(configFile string) error {
	nv := viper.New()
	nv.SetConfigFile(configFile)
	nv.AutomaticEnv()
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(nv)
	if err := nv.ReadInConfig(); err != nil {
		return err
	}

	cfg, err := unmarshal(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	v = nv
	AnalyzerConfig = cfg
	mu.Unlock()
	return nil
}

func unmarshal(v *viper.Viper) (AnalyzerConfiguration, error) {
	var cfg AnalyzerConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if nodeID := os.Getenv("NODE_ID"); nodeID != "" {
		cfg.ID = nodeID
	}
	if cfg.HttpPort < 0 || cfg.HttpPort > 65535 {
		return cfg, fmt.Errorf("invalid httpPort %d", cfg.HttpPort)
	}
	for _, l := range cfg.Labels {
		if l.ID == "" {
			return cfg, fmt.Errorf("label override without id: %+v", l)
		}
	}
	return cfg, nil
}

// Get 当前配置快照
func Get() AnalyzerConfiguration {
	mu.RLock()
	defer mu.RUnlock()
	return AnalyzerConfig
}

// Watch 配置文件变化时重新解析并回调；解析失败保留旧配置
func Watch(onChange func(cfg AnalyzerConfiguration), onError func(err error)) {
	mu.RLock()
	wv := v
	mu.RUnlock()
	if wv == nil {
		return
	}
	wv.OnConfigChange(func(in fsnotify.Event) {
		cfg, err := unmarshal(wv)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		mu.Lock()
		AnalyzerConfig = cfg
		mu.Unlock()
		onChange(cfg)
	})
	wv.WatchConfig()
}
