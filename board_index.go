// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: board_index.go
// 说明: 版面索引; 优先读取缓存 boards.json, 不存在时从版面快照构建并写入缓存

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mozillazg/go-pinyin"
)

// BoardIndex 进程内的版面列表, 由调用方创建一次后显式传递
type BoardIndex struct {
	boards []BoardInfo
	byID   map[string]int
}

func newBoardIndex(boards []BoardInfo) *BoardIndex {
	idx := &BoardIndex{
		boards: boards,
		byID:   make(map[string]int, len(boards)),
	}
	for i, b := range boards {
		if _, ok := idx.byID[b.ID]; !ok {
			idx.byID[b.ID] = i
		}
	}
	return idx
}

// LoadBoardIndex 加载版面索引
//
// Description:
//
//	缓存文件存在时直接读取; 不存在时从 source 解析快照, 并把结果写入缓存
//	缓存只写一次, 之后不会检测或刷新, 需要更新时手动删除缓存文件
//	缓存写入失败不影响本次结果, 只记录警告
func LoadBoardIndex(ctx context.Context, cachePath string, source BoardSource, logger *slog.Logger) (*BoardIndex, error) {
	boards, err := loadBoardCache(cachePath)
	if err == nil {
		logger.Debug("从缓存加载版面", "file", cachePath, "count", len(boards))
		return newBoardIndex(boards), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	boards, err = buildBoards(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Info("从快照构建版面索引", "source", source.String(), "count", len(boards))

	if err := saveBoardCache(cachePath, boards); err != nil {
		logger.Warn("写入版面缓存失败", "file", cachePath, "error", err)
	}
	return newBoardIndex(boards), nil
}

// Boards 返回全部版面的副本, 顺序与快照中一致
func (idx *BoardIndex) Boards() []BoardInfo {
	out := make([]BoardInfo, len(idx.boards))
	copy(out, idx.boards)
	return out
}

// Lookup 按版面ID精确查找
func (idx *BoardIndex) Lookup(id string) (BoardInfo, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return BoardInfo{}, false
	}
	return idx.boards[i], true
}

// Search 用拼音子串匹配版面
//
// 匹配前拼音去掉空格、"·"、":" 并转小写, 查询同样转小写;
// 结果按 (首次出现位置, 拼音) 升序排列
func (idx *BoardIndex) Search(query string) []BoardInfo {
	q := strings.ToLower(query)

	type match struct {
		info BoardInfo
		pos  int
	}
	var matches []match
	for _, b := range idx.boards {
		key := normalizeKey(b.Pinyin)
		p := strings.Index(key, q)
		if p < 0 {
			continue
		}
		matches = append(matches, match{info: b, pos: utf8.RuneCountInString(key[:p])})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return matches[i].info.Pinyin < matches[j].info.Pinyin
	})

	result := make([]BoardInfo, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.info)
	}
	return result
}

var keyStripper = strings.NewReplacer(" ", "", "·", "", ":", "", "：", "")

// normalizeKey 生成用于匹配的拼音
func normalizeKey(key string) string {
	return keyStripper.Replace(strings.ToLower(strings.TrimSpace(key)))
}

// pinyinArgs 不带声调, 非汉字原样保留
var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}()

// phoneticKey 将版面名转为拼音, 如 "水木特快" => "shuimutekuai"
func phoneticKey(title string) string {
	return strings.Join(pinyin.LazyPinyin(title, pinyinArgs), "")
}

// boardIDFromHref 取链接的最后一段作为版面ID, 如 "/nForum/board/Python" => "Python"
func boardIDFromHref(href string) string {
	return href[strings.LastIndex(href, "/")+1:]
}

// buildBoards 打开快照并解析出版面列表
func buildBoards(ctx context.Context, source BoardSource) ([]BoardInfo, error) {
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	boards, err := parseBoardsHTML(rc)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, wrapErrorf(errEmptySnapshot, "版面快照: %s", source.String())
	}
	return boards, nil
}

// parseBoardsHTML 提取同时带有 title 和 href 属性的 <a> 标签
//
// ID为空的链接被跳过; 同一ID只保留第一次出现的版面
func parseBoardsHTML(r io.Reader) ([]BoardInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, wrapErrorf(err, "解析版面快照失败")
	}

	var boards []BoardInfo
	seen := make(map[string]bool)
	doc.Find("a[title][href]").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.AttrOr("title", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if title == "" || href == "" {
			return
		}
		id := boardIDFromHref(href)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		boards = append(boards, BoardInfo{
			Title:  title,
			Href:   href,
			ID:     id,
			Pinyin: phoneticKey(title),
		})
	})
	return boards, nil
}

// loadBoardCache 读取缓存; 文件不存在时返回的错误满足 errors.Is(err, fs.ErrNotExist)
func loadBoardCache(path string) ([]BoardInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErrorf(err, "读取版面缓存失败: %s", path)
	}
	var boards []BoardInfo
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, wrapErrorf(err, "版面缓存格式错误: %s", path)
	}
	return boards, nil
}

// saveBoardCache 将版面列表写为单个JSON数组
func saveBoardCache(path string, boards []BoardInfo) error {
	data, err := json.Marshal(boards)
	if err != nil {
		return wrapErrorf(err, "序列化版面缓存失败")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return wrapErrorf(err, "写入版面缓存失败: %s", path)
	}
	return nil
}
