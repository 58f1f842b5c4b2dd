package http

import (
	"fmt"
	"net/http"
	"time"

	"paili/common/log"
	"paili/common/utils"

	"github.com/google/uuid"
)

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// LoggerMiddleware 请求结束后记录耗时和状态码
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.With("request_id", c.RequestID()).Info("http",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.StatusCode(),
			"ip", c.ClientIP(),
			"latency", time.Since(start),
		)
		return nil
	}
}

// RecoveryMiddleware 捕获后续处理中的 panic
func RecoveryMiddleware() MiddlewareFunc {
	return func(c *Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered: %s %s: %v", c.Method(), c.Path(), r)
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		c.Next()
		return nil
	}
}

// RequestIDMiddleware 沿用调用方的 X-Request-ID，没有则生成
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// RateLimitMiddleware 按客户端 IP 限流，超限返回 429
func RateLimitMiddleware(limiter *utils.KeyedLimiter) MiddlewareFunc {
	return func(c *Context) error {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, NewResponse(CodeTooManyRequests, MsgTooManyRequests, nil))
			c.Abort()
		}
		return nil
	}
}
