// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: query_router.go
// 说明: 根据输入分发到 十大 / 版面文章 / 版面搜索 三个分支

package main

import (
	"context"
	"log/slog"
	"strings"

	aw "github.com/deanishe/awgo"
)

// RouteKind 查询类型
type RouteKind int

const (
	RouteTopTen RouteKind = iota // 空查询: 十大热门话题
	RouteBoard                   // 含 ">": 显示指定版面
	RouteSearch                  // 其余: 按拼音搜索版面
)

func (k RouteKind) String() string {
	switch k {
	case RouteTopTen:
		return "topten"
	case RouteBoard:
		return "board"
	default:
		return "search"
	}
}

// Route 一次查询的分发结果
type Route struct {
	Kind    RouteKind
	BoardID string // 仅 RouteBoard 有效, 为最后一个 ">" 之后的内容
	Query   string // 去掉首尾空白后的查询
}

// ParseQuery 解析原始查询字符串
func ParseQuery(raw string) Route {
	q := strings.TrimSpace(raw)
	switch {
	case q == "":
		return Route{Kind: RouteTopTen}
	case strings.Contains(q, ">"):
		id := strings.TrimSpace(q[strings.LastIndex(q, ">")+1:])
		return Route{Kind: RouteBoard, BoardID: id, Query: q}
	default:
		return Route{Kind: RouteSearch, Query: q}
	}
}

// FeedSource 提供RSS条目, 失败时返回空列表
type FeedSource interface {
	TopTen(ctx context.Context) []FeedItem
	Board(ctx context.Context, boardID string) []FeedItem
}

// IndexLoader 加载版面索引
type IndexLoader func(ctx context.Context) (*BoardIndex, error)

// Router 持有抓取器与版面索引; 索引在第一次需要时加载, 之后复用
type Router struct {
	feeds  FeedSource
	load   IndexLoader
	logger *slog.Logger

	index    *BoardIndex
	indexErr error
	loaded   bool
}

// NewRouter 创建路由器
func NewRouter(feeds FeedSource, load IndexLoader, logger *slog.Logger) *Router {
	return &Router{feeds: feeds, load: load, logger: logger}
}

// Dispatch 处理一次查询, 结果全部写入 fb
func (r *Router) Dispatch(ctx context.Context, raw string, fb *aw.Feedback) {
	route := ParseQuery(raw)
	r.logger.Debug("分发查询", "kind", route.Kind.String(), "query", route.Query)

	switch route.Kind {
	case RouteTopTen:
		addFeedItems(fb, r.feeds.TopTen(ctx))
	case RouteBoard:
		r.displayBoard(ctx, route.BoardID, fb)
	default:
		r.displayMatchedBoards(ctx, route.Query, fb)
	}
}

// boards 返回版面索引, 加载失败时返回 nil 并只记录一次日志
func (r *Router) boards(ctx context.Context) *BoardIndex {
	if !r.loaded {
		r.index, r.indexErr = r.load(ctx)
		r.loaded = true
		if r.indexErr != nil {
			r.logger.Warn("加载版面索引失败", "error", r.indexErr)
		}
	}
	return r.index
}

func (r *Router) displayBoard(ctx context.Context, boardID string, fb *aw.Feedback) {
	idx := r.boards(ctx)
	if idx == nil {
		addPlaceholder(fb, titleInvalidBoard)
		return
	}
	if _, ok := idx.Lookup(boardID); !ok {
		addPlaceholder(fb, titleInvalidBoard)
		return
	}
	addFeedItems(fb, r.feeds.Board(ctx, boardID))
}

func (r *Router) displayMatchedBoards(ctx context.Context, query string, fb *aw.Feedback) {
	idx := r.boards(ctx)
	if idx == nil {
		addPlaceholder(fb, titleNoMatch)
		return
	}
	matches := idx.Search(query)
	if len(matches) == 0 {
		addPlaceholder(fb, titleNoMatch)
		return
	}
	addBoards(fb, matches)
}
