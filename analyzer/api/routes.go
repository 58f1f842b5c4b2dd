package api

import (
	"context"

	"paili/analyzer/application/service"
	"paili/common/http"
	"paili/common/monitor"
)

// HealthCheck 依赖组件的健康检查，返回 nil 表示正常
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	svc     service.AnalysisService
	monitor *monitor.Monitor
	checks  map[string]HealthCheck
}

func NewHandlers(svc service.AnalysisService, mon *monitor.Monitor, checks map[string]HealthCheck) *Handlers {
	if checks == nil {
		checks = make(map[string]HealthCheck)
	}
	return &Handlers{
		svc:     svc,
		monitor: mon,
		checks:  checks,
	}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, h *Handlers) {
	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)
	server.NoRoute(NotFoundHandler)

	// API v1 路由组
	v1 := server.Group("/api/v1")
	{
		v1.GET("/analyze", h.AnalyzeQueryHandler)
		v1.POST("/analyze", h.AnalyzeHandler)
		v1.GET("/shanten", h.ShantenHandler)
		v1.GET("/labels", h.LabelsHandler)
	}
}
