// Author: 游钓四方 <haibao1027@gmail.com>
// File: cos_source.go
// Description: 使用COS SDK从指定Bucket下载版面快照 boards.html
// Technical documentation:
// 腾讯 Go SDK 快速入门: https://cloud.tencent.com/document/product/436/31215
// XML Go SDK 源码: https://github.com/tencentyun/cos-go-sdk-v5

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

// cosBoardSource 从COS对象读取版面快照
type cosBoardSource struct {
	client    *cos.Client
	objectURL string
	key       string
}

// newCosBoardSource 根据对象的完整地址创建COS版面快照源
//
// Parameters:
//   - objectURL : 形如 https://bucket.cos.ap-xxx.myqcloud.com/path/boards.html
//   - secretID  : 腾讯云 SecretID
//   - secretKey : 腾讯云 SecretKey
func newCosBoardSource(objectURL, secretID, secretKey string) (*cosBoardSource, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return nil, wrapErrorf(err, "解析COS地址失败: %s", objectURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("COS地址缺少协议或主机: %s", objectURL)
	}

	// BucketURL 只需要 Scheme 与 Host
	baseURL := &cos.BaseURL{
		BucketURL: &url.URL{
			Scheme: u.Scheme,
			Host:   u.Host,
		},
	}
	client := cos.NewClient(baseURL, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  secretID,
			SecretKey: secretKey,
		},
	})

	return &cosBoardSource{
		client:    client,
		objectURL: objectURL,
		// 去掉路径开头的斜杠, 例如 /folder/boards.html => folder/boards.html
		key: strings.TrimPrefix(u.Path, "/"),
	}, nil
}

// Open 下载对象, 调用方负责关闭返回的 Body
func (s *cosBoardSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Object.Get(ctx, s.key, nil)
	if err != nil {
		return nil, wrapErrorf(err, "从COS下载版面快照失败: %s", s.key)
	}
	return resp.Body, nil
}

func (s *cosBoardSource) String() string {
	return s.objectURL
}
