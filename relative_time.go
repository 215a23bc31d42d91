// 作者: 游钓四方 <haibao1027@gmail.com>
// 文件: relative_time.go
// 说明: 将发布时间转换为 "3小时前" 之类的相对时间

package main

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60.0
	secondsPerHour   = 3600.0
	secondsPerDay    = 24 * secondsPerHour
)

// formatSince 按时间差所处的区间返回中文相对时间
//
//	>= 2天  : "N 天前"
//	>= 1天  : "昨天"
//	>= 1小时: "N小时前"
//	>= 1分钟: "N分钟前"
//	其余    : "N秒前"
//
// N 四舍五入取整; 发布时间晚于当前时间时按0秒处理
func formatSince(t, now time.Time) string {
	dt := now.Sub(t).Seconds()
	if dt < 0 {
		dt = 0
	}

	switch {
	case dt >= 2*secondsPerDay:
		return fmt.Sprintf("%.0f 天前", dt/secondsPerDay)
	case dt >= secondsPerDay:
		return "昨天"
	case dt >= secondsPerHour:
		return fmt.Sprintf("%.0f小时前", dt/secondsPerHour)
	case dt >= secondsPerMinute:
		return fmt.Sprintf("%.0f分钟前", dt/secondsPerMinute)
	default:
		return fmt.Sprintf("%.0f秒前", dt)
	}
}
