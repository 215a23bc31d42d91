// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: model.go
// 说明: 定义数据结构、类型等

package main

// FeedItem 一条RSS条目, 每次抓取时生成, 格式化输出后即丢弃
//   - Title       : 帖子标题
//   - Link        : 帖子链接
//   - Description : 去掉HTML标签后的摘要
//   - Since       : 相对时间, 如 "3小时前", 无法解析时为空字符串
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Since       string
}

// BoardInfo 版面信息, 与缓存文件 boards.json 中的字段一一对应
type BoardInfo struct {
	Title  string `json:"title"`  // 版面中文名
	Href   string `json:"href"`   // 版面链接
	ID     string `json:"id"`     // 版面ID, 取自链接最后一段
	Pinyin string `json:"pinyin"` // 版面名的拼音
}
