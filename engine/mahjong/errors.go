package mahjong

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInputShape   ErrorKind = "input_shape"
	KindOverfullTile ErrorKind = "overfull_tile"
	KindInvalidTile  ErrorKind = "invalid_tile"
)

// HandError 手牌构造阶段的错误，Kind 用于调用方区分处理
type HandError struct {
	Kind ErrorKind
	Msg  string
}

var (
	ErrInputShape   = &HandError{Kind: KindInputShape, Msg: "手牌张数错误"}
	ErrOverfullTile = &HandError{Kind: KindOverfullTile, Msg: "同种牌超过4张"}
	ErrInvalidTile  = &HandError{Kind: KindInvalidTile, Msg: "无效的牌"}
)

func (e *HandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is 同 Kind 即视为同一类错误
func (e *HandError) Is(target error) bool {
	t, ok := target.(*HandError)
	return ok && t.Kind == e.Kind
}

func newHandError(kind ErrorKind, format string, args ...any) *HandError {
	return &HandError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf 非 HandError 返回空串
func KindOf(err error) ErrorKind {
	var he *HandError
	if errors.As(err, &he) {
		return he.Kind
	}
	return ""
}
