package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLogger logs config discovery and one-shot commands before the
// configured logger exists. It always writes to stderr so that `export -o -`
// and the stdio MCP transport keep stdout to themselves.
// 启动阶段日志器，只写 stderr
var bootstrapLogger = newBootstrapLogger()

func newBootstrapLogger() *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if os.Getenv("ANNOTUM_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller()).Named("bootstrap")
}
