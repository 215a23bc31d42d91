// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: feed_fetcher.go
// 说明: 抓取水木RSS(十大热门话题、版面文章)并解析为 FeedItem 列表

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher 负责单次HTTP抓取和RSS解析
//
// 所有失败(网络错误、非2xx状态码、解码失败、XML非法)都只返回空列表, 不向上返回错误,
// 失败原因以 debug 级别写入日志
type FeedFetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	charset   string
	topTenURL string
	boardURL  string
	now       func() time.Time
	logger    *slog.Logger
}

// NewFeedFetcher 根据配置创建抓取器; HTTPTimeout 为0时不设置超时
func NewFeedFetcher(cfg *Config, logger *slog.Logger) *FeedFetcher {
	return &FeedFetcher{
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		parser:    gofeed.NewParser(),
		charset:   cfg.FeedCharset,
		topTenURL: cfg.TopTenURL,
		boardURL:  cfg.BoardURL,
		now:       time.Now,
		logger:    logger,
	}
}

// TopTen 抓取十大热门话题
func (f *FeedFetcher) TopTen(ctx context.Context) []FeedItem {
	return f.Fetch(ctx, f.topTenURL)
}

// Board 抓取指定版面的最新文章
func (f *FeedFetcher) Board(ctx context.Context, boardID string) []FeedItem {
	return f.Fetch(ctx, fmt.Sprintf(f.boardURL, url.PathEscape(boardID)))
}

// Fetch 抓取并解析一个RSS地址, 结果顺序与RSS中条目顺序一致; 失败时返回空列表
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) []FeedItem {
	items, err := f.fetch(ctx, feedURL)
	if err != nil {
		f.logger.Debug("抓取RSS失败", "url", feedURL, "error", err)
		return []FeedItem{}
	}
	return items
}

func (f *FeedFetcher) fetch(ctx context.Context, feedURL string) ([]FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, wrapErrorf(err, "构造请求失败: %s", feedURL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, wrapErrorf(err, "请求RSS失败: %s", feedURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, wrapErrorf(fmt.Errorf("HTTP状态码: %d", resp.StatusCode), "获取RSS失败: %s", feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErrorf(err, "读取RSS body失败")
	}

	doc, err := decodeFeedBody(body, f.charset)
	if err != nil {
		return nil, err
	}

	feed, err := f.parser.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, wrapErrorf(err, "解析RSS失败: %s", feedURL)
	}

	now := f.now()
	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, toFeedItem(it, now))
	}
	f.logger.Debug("抓取RSS完成", "url", feedURL, "count", len(items))
	return items, nil
}
