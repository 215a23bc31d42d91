// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: board_source.go
// 说明: 版面快照(boards.html)的来源, 本地文件、COS 或 GitHub 仓库

package main

import (
	"context"
	"io"
	"os"
)

// BoardSource 提供版面快照的HTML内容, 仅在缓存文件不存在时使用
type BoardSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// fileBoardSource 从本地文件读取版面快照, 相对路径基于当前工作目录
type fileBoardSource struct {
	path string
}

func (s fileBoardSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, wrapErrorf(err, "打开版面快照失败: %s", s.path)
	}
	return f, nil
}

func (s fileBoardSource) String() string {
	return s.path
}

// NewBoardSource 根据 BoardsSource 配置选择快照来源
func NewBoardSource(cfg *Config) (BoardSource, error) {
	switch cfg.BoardsSource {
	case sourceCOS:
		return newCosBoardSource(cfg.BoardsHTML, cfg.TencentSecretID, cfg.TencentSecretKey)
	case sourceGitHub:
		return newGitHubBoardSource(cfg.GitHubToken, cfg.GitHubName, cfg.GitHubRepo, cfg.BoardsHTML), nil
	default:
		return fileBoardSource{path: cfg.BoardsHTML}, nil
	}
}
