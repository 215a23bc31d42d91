// Author: 游钓四方 <haibao1027@gmail.com>
// File: logger.go
// Description: 日志初始化; stdout 留给 Alfred 的 JSON 输出, 日志一律写到 stderr

package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger 创建一个文本格式的结构化日志器
//
// Parameters:
//   - w     : 日志输出目标, 正常运行时为 os.Stderr
//   - level : 日志级别字符串 debug/info/warn/error
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
