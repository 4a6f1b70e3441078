// Package logger 基于log/slog的结构化日志
//
// 设计说明：
// 1. 按配置选择console（文本）或json格式
// 2. 输出到stdout、stderr或文件
// 3. 通过TraceHandler自动附加trace_id/span_id，日志和Jaeger里的Span可以互相查找
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Options 日志配置（与config.LogConfig字段一致，避免pkg依赖internal）
type Options struct {
	Level  string
	Format string
	Output string
}

// New 创建Logger
// 返回的closer用于关闭日志文件（stdout/stderr时为空操作）
func New(opts Options) (*slog.Logger, func() error, error) {
	w, closer, err := openOutput(opts.Output)
	if err != nil {
		return nil, nil, err
	}
	return NewWithWriter(w, opts), closer, nil
}

// NewWithWriter 输出到指定Writer（测试和CLI使用）
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(&TraceHandler{Handler: h})
}

// Discard 丢弃所有输出
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel 解析日志级别，无法识别时使用info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, f.Close, nil
}

// TraceHandler 从context中提取Span信息写入日志记录
type TraceHandler struct {
	slog.Handler
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}
