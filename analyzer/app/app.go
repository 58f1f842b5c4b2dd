package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"paili/analyzer/api"
	"paili/analyzer/application/service"
	"paili/common/cache"
	"paili/common/config"
	"paili/common/database"
	"paili/common/http"
	"paili/common/log"
	"paili/common/metrics"
	"paili/common/monitor"
	"paili/common/utils"
	"paili/engine/analysis"
	"paili/engine/scoring"
	"paili/framework/node"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// RulesOf 配置中的计分规则
func RulesOf(c config.RulesConf) scoring.Rules {
	return scoring.Rules{
		AkaDora:       c.AkaDora,
		DoubleWindFu:  c.DoubleWindFu,
		KazoeYakuman:  c.KazoeYakuman,
		DoubleYakuman: c.DoubleYakuman,
	}
}

// Run 启动 HTTP、可选的 nats worker 与 metrics，收到信号或 ctx 结束后优雅关闭
func Run(ctx context.Context, cfg config.AnalyzerConfiguration) error {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer stopSignals()

	checks := make(map[string]api.HealthCheck)
	var opts []service.Option

	if cfg.CacheConf.MaxCost > 0 {
		local, err := cache.NewTyped[*analysis.HandAnalysisResult](cfg.CacheConf.MaxCost, time.Duration(cfg.CacheConf.TtlSeconds)*time.Second)
		if err != nil {
			return err
		}
		defer local.Close()
		opts = append(opts, service.WithLocalCache(local))
	}

	if cfg.RedisConf.Addr != "" || len(cfg.RedisConf.ClusterAddrs) > 0 {
		redis, err := database.NewRedis(ctx, cfg.RedisConf, "paili:analysis:")
		if err != nil {
			// redis 只是共享缓存，连不上时降级为单机
			log.Warn("redis 不可用，不启用二级缓存: %v", err)
		} else {
			defer redis.Close()
			opts = append(opts, service.WithRedis(redis, time.Duration(cfg.RedisConf.TtlSeconds)*time.Second))
			checks["redis"] = redis.Ping
		}
	}

	svc := service.NewAnalysisService(RulesOf(cfg.RulesConf), cfg.LabelMap(), opts...)
	config.Watch(func(newCfg config.AnalyzerConfiguration) {
		svc.ReloadLabels(newCfg.LabelMap())
	}, func(err error) {
		log.Error("配置重新加载失败，保留旧配置: %v", err)
	})

	g, gctx := errgroup.WithContext(ctx)

	mon := monitor.NewMonitor(10 * time.Second)
	g.Go(func() error {
		mon.Start(gctx)
		return nil
	})

	if cfg.NatsConfig.URL != "" {
		cli, err := node.NewNatsClient(cfg.NatsConfig.URL, cfg.ID)
		if err != nil {
			return fmt.Errorf("nats 连接失败: %w", err)
		}
		checks["nats"] = func(context.Context) error {
			if !cli.IsConnected() {
				return node.ErrNotConnected
			}
			return nil
		}
		handlers := api.NewHandlers(svc, mon, nil)
		worker := node.NewNatsWorker(cli, "analyzer", 64)
		worker.RegisterHandlers(handlers.NatsHandlers(cfg.NatsConfig.Subject))
		g.Go(func() error {
			defer worker.Close()
			return worker.Run(gctx)
		})
	}

	mode := gin.ReleaseMode
	if cfg.LogConf.Level == "debug" {
		mode = gin.DebugMode
	}
	server := http.NewHttpServer(
		http.WithPort(cfg.HttpPort),
		http.WithMode(mode),
	)
	// 中间处理器注册
	server.Use(
		http.RequestIDMiddleware(),
		http.LoggerMiddleware(),
		http.RecoveryMiddleware(),
		http.CorsMiddleware(),
	)
	if cfg.RateLimit.Rps > 0 {
		server.Use(http.RateLimitMiddleware(utils.NewKeyedLimiter(cfg.RateLimit.Rps, cfg.RateLimit.Burst, 10*time.Minute)))
	}
	api.RegisterRoutes(server, api.NewHandlers(svc, mon, checks))

	g.Go(func() error {
		log.Info("启动 HTTP 服务器，端口: %d", cfg.HttpPort)
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
			return err
		}
		log.Info("HTTP 服务器已优雅关闭")
		return nil
	})

	if cfg.MetricPort > 0 {
		ms, err := metrics.NewServer(fmt.Sprintf("0.0.0.0:%d", cfg.MetricPort))
		if err != nil {
			return err
		}
		g.Go(ms.Serve)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return ms.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	log.Info("analyzer 服务已停止")
	return err
}
