package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "requestID"

// Context 封装 gin.Context，提供统一的请求/响应接口
type Context struct {
	ginCtx *gin.Context
}

func newContext(c *gin.Context) *Context {
	return &Context{ginCtx: c}
}

func (c *Context) GetQuery(key string) string {
	return c.ginCtx.Query(key)
}

func (c *Context) GetQueryWithDefault(key, defaultValue string) string {
	return c.ginCtx.DefaultQuery(key, defaultValue)
}

func (c *Context) GetHeader(key string) string {
	return c.ginCtx.GetHeader(key)
}

// BindJSON 绑定 JSON 请求体
func (c *Context) BindJSON(obj any) error {
	return c.ginCtx.ShouldBindJSON(obj)
}

func (c *Context) JSON(code int, obj any) {
	c.ginCtx.JSON(code, obj)
}

func (c *Context) String(code int, format string, values ...any) {
	c.ginCtx.String(code, format, values...)
}

func (c *Context) SetHeader(key, value string) {
	c.ginCtx.Header(key, value)
}

func (c *Context) ClientIP() string {
	return c.ginCtx.ClientIP()
}

func (c *Context) Method() string {
	return c.ginCtx.Request.Method
}

func (c *Context) Path() string {
	return c.ginCtx.Request.URL.Path
}

func (c *Context) Set(key string, value any) {
	c.ginCtx.Set(key, value)
}

func (c *Context) Get(key string) (any, bool) {
	return c.ginCtx.Get(key)
}

// RequestID 由 RequestIDMiddleware 写入
func (c *Context) RequestID() string {
	return c.ginCtx.GetString(requestIDKey)
}

// Next 中间件中执行后续处理
func (c *Context) Next() {
	c.ginCtx.Next()
}

func (c *Context) Abort() {
	c.ginCtx.Abort()
}

func (c *Context) AbortWithStatus(code int) {
	c.ginCtx.AbortWithStatus(code)
}

// StatusCode 已写出的响应码
func (c *Context) StatusCode() int {
	return c.ginCtx.Writer.Status()
}

// Request 获取原始 http.Request（谨慎使用）
func (c *Context) Request() *http.Request {
	return c.ginCtx.Request
}
