// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: feed_parser.go
// 说明: RSS正文的字符集转换、时间字符串解析、摘要去HTML, 以及 gofeed 条目到 FeedItem 的转换

package main

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// xmlEncodingDecl 匹配XML声明中的 encoding="..." 部分
var xmlEncodingDecl = regexp.MustCompile(`(?i)(<\?xml[^>]*?encoding\s*=\s*["'])[^"']*(["'])`)

// decodeFeedBody 按指定字符集把RSS正文转为UTF-8
//
// Description:
//
//	水木的RSS声明为 gb2312, 实际内容是 gb18030, 所以不能交给解析器按声明自动转换,
//	这里先整体按 label 解码, 再把声明里的 encoding 改成 utf-8
//	label 为空或为 utf-8 时原样返回
func decodeFeedBody(body []byte, label string) ([]byte, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return body, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, wrapErrorf(errUnknownCharset, "无法识别字符集: %s", label)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, wrapErrorf(err, "按 %s 解码RSS失败", name)
	}
	return xmlEncodingDecl.ReplaceAll(decoded, []byte("${1}utf-8${2}")), nil
}

// parseTime 尝试用多种格式解析RSS中的时间字符串, 若都失败则返回错误
func parseTime(timeStr string) (time.Time, error) {
	formats := []string{
		time.RFC1123,  // "Mon, 02 Jan 2006 15:04:05 MST", 水木使用的格式
		time.RFC1123Z, // "Mon, 02 Jan 2006 15:04:05 -0700"
		time.RFC3339,
	}

	timeStr = strings.TrimSpace(timeStr)
	for _, f := range formats {
		if t, err := time.Parse(f, timeStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, wrapErrorf(errUnparsableTime, "无法解析时间: %q", timeStr)
}

// textPolicy 去掉所有标签, 只保留文本
var textPolicy = bluemonday.StrictPolicy()

// plainText 把摘要中的HTML转换为纯文本并压缩空白
func plainText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// sinceText 计算条目发布时间对应的相对时间, 缺失或无法解析时返回空字符串
func sinceText(item *gofeed.Item, now time.Time) string {
	if item.PublishedParsed != nil {
		return formatSince(*item.PublishedParsed, now)
	}
	if strings.TrimSpace(item.Published) == "" {
		return ""
	}
	t, err := parseTime(item.Published)
	if err != nil {
		return ""
	}
	return formatSince(t, now)
}

// toFeedItem 将 gofeed 的条目转换为本项目的 FeedItem
func toFeedItem(item *gofeed.Item, now time.Time) FeedItem {
	return FeedItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: plainText(item.Description),
		Since:       sinceText(item, now),
	}
}
