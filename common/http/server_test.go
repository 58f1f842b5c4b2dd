package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paili/common/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware(), RecoveryMiddleware(), CorsMiddleware())
	return s
}

func TestRequestID(t *testing.T) {
	s := newTestServer()
	s.GET("/id", func(c *Context) error {
		c.Success(c.RequestID())
		return nil
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-ID", "abc")
	s.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"data":"abc"`)
}

func TestRecovery(t *testing.T) {
	s := newTestServer()
	s.GET("/panic", func(c *Context) error {
		panic("boom")
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlerError(t *testing.T) {
	s := newTestServer()
	g := s.Group("/api", LoggerMiddleware())
	g.GET("/err", func(c *Context) error {
		return errors.New("failed")
	})
	g.GET("/written", func(c *Context) error {
		c.BadRequest("")
		return errors.New("ignored")
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/err", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed")

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/written", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MsgInvalidParam)
}

func TestCorsPreflight(t *testing.T) {
	s := newTestServer()
	s.POST("/x", func(c *Context) error { return nil })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost")
	s.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownBeforeStart(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode), WithPort(0))
	assert.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.Start())
}

func TestRateLimit(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RateLimitMiddleware(utils.NewKeyedLimiter(1, 2, time.Minute)))
	s.GET("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
