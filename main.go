// Author: 游钓四方 <haibao1027@gmail.com>
// File: main.go
// Description: 程序入口文件, 读取配置, 作为 Alfred Script Filter 运行并输出结果

package main

import (
	"context"
	"log/slog"
	"os"

	aw "github.com/deanishe/awgo"
)

func main() {
	cfg := LoadConfig()
	logger := newLogger(os.Stderr, cfg.LogLevel)

	// 配置有误时回退到默认值, 仍然给出结果
	if err := cfg.Validate(); err != nil {
		logger.Warn("配置校验失败, 使用默认值", "error", err)
		cfg.applyDefaults()
	}

	wf := aw.New()
	wf.Run(func() {
		run(context.Background(), wf, cfg, logger)
	})
}

// run 取第一个参数作为查询(缺省为空串), 分发后一次性输出
func run(ctx context.Context, wf *aw.Workflow, cfg *Config, logger *slog.Logger) {
	query := ""
	if args := wf.Args(); len(args) > 0 {
		query = args[0]
	}

	router := NewRouter(NewFeedFetcher(cfg, logger), boardIndexLoader(cfg, logger), logger)
	router.Dispatch(ctx, query, wf.Feedback)
	wf.SendFeedback()
}

// boardIndexLoader 延迟创建快照来源, 只有缓存缺失时才会真正用到
func boardIndexLoader(cfg *Config, logger *slog.Logger) IndexLoader {
	return func(ctx context.Context) (*BoardIndex, error) {
		source, err := NewBoardSource(cfg)
		if err != nil {
			return nil, err
		}
		return LoadBoardIndex(ctx, cfg.CacheFile, source, logger)
	}
}
