package api

import (
	"context"
	"time"

	"paili/common/http"
)

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]any{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "analyzer",
	})
	return nil
}

// NotFoundHandler 未知路径统一返回 JSON 404
func NotFoundHandler(c *http.Context) error {
	c.NotFound("")
	return nil
}

// HealthHandler 所有依赖正常时返回 200，否则 503
func (h *Handlers) HealthHandler(c *http.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	healthy := true
	services := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			services[name] = err.Error()
		} else {
			services[name] = "ok"
		}
	}

	status := map[string]any{
		"healthy":   healthy,
		"services":  services,
		"timestamp": time.Now().Unix(),
	}
	if h.monitor != nil {
		status["load"] = h.monitor.Latest()
	}

	if healthy {
		c.Success(status)
	} else {
		c.ServiceUnavailable("服务不健康", status)
	}
	return nil
}
