package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.New(os.Stderr)

// InitLog 节点启动时调用一次；未调用时使用 stderr 上的默认 logger
func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout 而不是 os.Stderr
	// GoLand 控制台会将 stderr 显示为红色，stdout 显示为正常颜色
	logger = newLogger(os.Stdout, appName, logLevel)
}

// SetOutput 测试或命令行模式下重定向输出
func SetOutput(w io.Writer, appName string, logLevel string) {
	logger = newLogger(w, appName, logLevel)
}

func newLogger(w io.Writer, appName, logLevel string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	// 显示文件名和行号，跳过本包的包装函数
	l.SetReportCaller(true)
	l.SetCallerOffset(1)
	l.SetLevel(ParseLevel(logLevel))
	return l
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// With 带固定字段的子 logger，供请求级别日志使用
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}
