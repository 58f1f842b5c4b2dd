package http

import "net/http"

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess      = 0     // 成功
	CodeError        = -1    // 通用错误
	CodeInvalidParam = 10001 // 参数错误
	CodeNotFound     = 10004 // 资源不存在
	CodeServerError  = 10005 // 服务器内部错误
	CodeUnavailable  = 10006 // 依赖不可用

	CodeTooManyRequests = 10007 // 请求过于频繁
)

// 预定义的响应消息
const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgNotFound     = "not found"
	MsgServerError  = "internal server error"
	MsgUnavailable  = "service unavailable"

	MsgTooManyRequests = "too many requests"
)

func NewResponse(code int, message string, data any) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Success 成功响应
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	c.BadRequestWithData(message, nil)
}

// BadRequestWithData 400，同时带回部分结果
func (c *Context) BadRequestWithData(message string, data any) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, data))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// ServiceUnavailable 503
func (c *Context) ServiceUnavailable(message string, data any) {
	if message == "" {
		message = MsgUnavailable
	}
	c.JSON(http.StatusServiceUnavailable, NewResponse(CodeUnavailable, message, data))
}
