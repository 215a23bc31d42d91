// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: feedback.go
// 说明: 把RSS条目、版面、占位提示渲染为 Alfred 的结果条目

package main

import (
	aw "github.com/deanishe/awgo"
)

const (
	titleNoMatch      = "没有匹配的板块"
	titleInvalidBoard = "无法找到对应的版面"
)

// addFeedItems 每条RSS一个可执行条目, 回车打开帖子链接
func addFeedItems(fb *aw.Feedback, items []FeedItem) {
	for _, item := range items {
		it := fb.NewItem(item.Title).
			Subtitle(item.Since).
			Arg(item.Link).
			Quicklook(item.Link).
			Valid(true)
		if item.Description != "" {
			it.Largetype(item.Description).Copytext(item.Description)
		}
	}
}

// addBoards 版面条目不可直接执行, Tab 补全为 "> 版面ID" 进入版面
func addBoards(fb *aw.Feedback, boards []BoardInfo) {
	for _, b := range boards {
		fb.NewItem(b.Title).
			Subtitle(b.ID).
			Arg(b.ID).
			Autocomplete("> " + b.ID).
			Valid(false)
	}
}

// addPlaceholder 无结果或参数非法时的提示条目
func addPlaceholder(fb *aw.Feedback, title string) {
	fb.NewItem(title).Valid(false)
}
