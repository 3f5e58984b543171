package logger

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

var _ log.Logger = (*kratosLogger)(nil)

// kratosLogger 把 kratos 的 key/value 日志转发到 logrus
type kratosLogger struct {
	log *logrus.Logger
}

// NewKratosLogger 创建基于 logrus 的 kratos Logger，l 为空时使用全局 Log
func NewKratosLogger(l *logrus.Logger) log.Logger {
	if l == nil {
		l = Log
	}
	return &kratosLogger{log: l}
}

// Log 实现 log.Logger 接口
func (k *kratosLogger) Log(level log.Level, keyvals ...any) error {
	if len(keyvals) == 0 {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}

	var msg string
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields[key] = keyvals[i+1]
	}

	k.log.WithFields(fields).Log(toLogrusLevel(level), msg)
	return nil
}

func toLogrusLevel(level log.Level) logrus.Level {
	switch level {
	case log.LevelDebug:
		return logrus.DebugLevel
	case log.LevelWarn:
		return logrus.WarnLevel
	case log.LevelError:
		return logrus.ErrorLevel
	case log.LevelFatal:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
