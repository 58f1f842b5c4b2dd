package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"paili/common/cache"
	"paili/common/database"
	"paili/common/log"
	"paili/engine/analysis"
	"paili/engine/scoring"

	"github.com/cespare/xxhash/v2"
)

// AnalysisService 牌理分析，带两级结果缓存
type AnalysisService interface {
	Analyze(ctx context.Context, hand string, opts analysis.Options) (*analysis.HandAnalysisResult, error)
	Shanten(ctx context.Context, hand string) (int, error)
	Generate(count int, seed uint64) ([]analysis.GeneratedHand, error)
	Labels() map[string]string
	ReloadLabels(overrides map[string]string)
}

// snapshot 分析器与其标签指纹一起替换，缓存键随标签变化
type snapshot struct {
	analyzer    *analysis.Analyzer
	fingerprint string
}

type analysisService struct {
	current  atomic.Pointer[snapshot]
	rules    scoring.Rules
	local    *cache.Typed[*analysis.HandAnalysisResult]
	redis    *database.RedisManager
	redisTTL time.Duration
}

type Option func(*analysisService)

// WithLocalCache nil 表示不使用进程内缓存
func WithLocalCache(c *cache.Typed[*analysis.HandAnalysisResult]) Option {
	return func(s *analysisService) {
		s.local = c
	}
}

// WithRedis 多个节点共享的二级缓存
func WithRedis(r *database.RedisManager, ttl time.Duration) Option {
	return func(s *analysisService) {
		s.redis = r
		s.redisTTL = ttl
	}
}

func NewAnalysisService(rules scoring.Rules, labels map[string]string, opts ...Option) AnalysisService {
	s := &analysisService{rules: rules}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(s.build(labels))
	return s
}

func (s *analysisService) build(overrides map[string]string) *snapshot {
	labels := analysis.NewLabels(overrides)
	return &snapshot{
		analyzer:    analysis.NewAnalyzer(analysis.WithRules(s.rules), analysis.WithLabels(labels)),
		fingerprint: fingerprint(labels.Map()),
	}
}

func fingerprint(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	d := xxhash.New()
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(m[k])
		_, _ = d.WriteString("\n")
	}
	return strconv.FormatUint(d.Sum64(), 36)
}

func (s *analysisService) Analyze(ctx context.Context, hand string, opts analysis.Options) (*analysis.HandAnalysisResult, error) {
	snap := s.current.Load()
	key, cacheable := analysis.CacheKey(hand, opts)
	if cacheable {
		key = snap.fingerprint + ":" + key
		if res, ok := s.lookup(ctx, key); ok {
			return res.WithInput(hand), nil
		}
	}

	res, err := snap.analyzer.AnalyzeWith(hand, opts)
	if err != nil {
		return res, err
	}
	if cacheable && storable(res) {
		s.store(ctx, key, res.Clone())
	}
	return res, nil
}

// storable 计分依赖失败的结果不缓存，下次重试
func storable(res *analysis.HandAnalysisResult) bool {
	return res.Success && (res.HandValue == nil || res.HandValue.ErrorKind != analysis.ErrorKindDependency)
}

func (s *analysisService) lookup(ctx context.Context, key string) (*analysis.HandAnalysisResult, bool) {
	if s.local != nil {
		if res, ok := s.local.Get(key); ok {
			return res, true
		}
	}
	if s.redis == nil {
		return nil, false
	}
	var res analysis.HandAnalysisResult
	if err := s.redis.GetJSON(ctx, key, &res); err != nil {
		if !errors.Is(err, database.ErrCacheMiss) {
			log.Warn("redis 读取分析结果失败: %v", err)
		}
		return nil, false
	}
	if s.local != nil {
		s.local.Set(key, &res)
	}
	return &res, true
}

func (s *analysisService) store(ctx context.Context, key string, res *analysis.HandAnalysisResult) {
	if s.local != nil {
		s.local.Set(key, res)
	}
	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, key, res, s.redisTTL); err != nil {
			log.Warn("redis 写入分析结果失败: %v", err)
		}
	}
}

func (s *analysisService) Shanten(_ context.Context, hand string) (int, error) {
	return s.current.Load().analyzer.Shanten(hand)
}

func (s *analysisService) Generate(count int, seed uint64) ([]analysis.GeneratedHand, error) {
	return analysis.NewGenerator(s.current.Load().analyzer, seed).Generate(count)
}

func (s *analysisService) Labels() map[string]string {
	return s.current.Load().analyzer.Labels().Map()
}

// ReloadLabels 替换分析器，进程内缓存随之清空；redis 中旧标签的结果因指纹不同不会再命中
func (s *analysisService) ReloadLabels(overrides map[string]string) {
	snap := s.build(overrides)
	s.current.Store(snap)
	if s.local != nil {
		s.local.Clear()
	}
	log.Info("役种标签已更新, 覆盖 %d 项, 指纹 %s", len(overrides), snap.fingerprint)
}
