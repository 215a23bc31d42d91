// Author: 游钓四方 <haibao1027@gmail.com>
// File: wrap_error.go
// Description: 错误包装帮助函数(追加文件名和行号)以及全局的哨兵错误

package main

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// errUnknownCharset 配置的RSS字符集无法识别
	errUnknownCharset = errors.New("未知的字符集")
	// errEmptySnapshot 版面快照中没有解析出任何版面, 此时不写缓存
	errEmptySnapshot = errors.New("版面快照中没有任何版面")
	// errUnparsableTime 时间字符串不符合任何已知格式
	errUnparsableTime = errors.New("无法识别的时间格式")
)

// wrapErrorf 用于在错误信息里加上调用处的文件名和行号
//
// Description:
//
//	通过 runtime.Caller(1) 获取上层调用位置, 原始错误以 %w 保留,
//	调用方仍可以用 errors.Is 判断 fs.ErrNotExist 等错误
func wrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	_, file, line, _ := runtime.Caller(1)
	return fmt.Errorf("%s:%d => %s | 原因: %w", file, line, fmt.Sprintf(format, args...), err)
}
