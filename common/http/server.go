package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine *gin.Engine
	mu     sync.Mutex
	server *http.Server
	closed bool
	port   int
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置运行模式，需要在 NewHttpServer 创建 engine 之前生效
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		gin.SetMode(mode)
	}
}

func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{port: 8080}
	for _, opt := range opts {
		opt(server)
	}
	server.engine = gin.New()
	return server
}

// wrapHandler 包装处理函数，未写出响应的错误统一返回 500
func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			_ = c.Error(err)
			if !c.Writer.Written() {
				ctx.InternalServerError(err.Error())
			}
		}
	}
}

// wrapMiddleware 中间件可以自行调用 Next；返回错误时中止后续处理
func (s *HttpServer) wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			if !c.Writer.Written() {
				ctx.InternalServerError(err.Error())
			}
			c.Abort()
		}
	}
}

func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

// NoRoute 未匹配任何路由时的处理
func (s *HttpServer) NoRoute(handler HandlerFunc) {
	s.engine.NoRoute(s.wrapHandler(handler))
}

// Group 创建路由组
func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(s.wrapMiddleware(middleware))
	}
	return &RouterGroup{
		group:  ginGroup,
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, rg.server.wrapHandler(handler))
}

func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, rg.server.wrapHandler(handler))
}

// Use 添加全局中间件
func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(s.wrapMiddleware(middleware))
	}
}

// Start 阻塞直到服务器关闭，正常关闭时返回 nil
func (s *HttpServer) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器，先于 Start 调用时 Start 直接返回
func (s *HttpServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ServeHTTP 测试中直接驱动路由
func (s *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}
