package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"paili/common/log"

	"github.com/arl/statsviz"
)

// Server statsviz 运行时指标页面，访问 /debug/statsviz/
type Server struct {
	srv *http.Server
}

func NewServer(addr string) (*Server, error) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return nil, err
	}
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}, nil
}

// Serve 阻塞直到 Shutdown
func (s *Server) Serve() error {
	log.Info("metrics 服务启动, addr:%s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler 测试用
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
