// Author: 游钓四方 <haibao1027@gmail.com>
// File: github_source.go
// Description: 通过 GitHub contents API 读取仓库中的版面快照 boards.html
// Technical documentation:
// GitHub REST API: https://docs.github.com/zh/rest?apiVersion=2022-11-28

package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const githubAPIBase = "https://api.github.com"

// githubBoardSource 从 GitHub 仓库读取版面快照, 公开仓库可以不设置 token
type githubBoardSource struct {
	client  *http.Client
	apiBase string
	token   string
	owner   string
	repo    string
	path    string
}

func newGitHubBoardSource(token, owner, repo, path string) *githubBoardSource {
	return &githubBoardSource{
		client:  &http.Client{},
		apiBase: githubAPIBase,
		token:   token,
		owner:   owner,
		repo:    repo,
		path:    strings.TrimPrefix(path, "/"),
	}
}

// Open 获取文件内容(base64 编码)并解码
func (s *githubBoardSource) Open(ctx context.Context) (io.ReadCloser, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiBase, s.owner, s.repo, s.path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, wrapErrorf(err, "构造GitHub请求失败: %s", apiURL)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrapErrorf(err, "请求GitHub失败: %s", s.path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, wrapErrorf(fmt.Errorf("HTTP状态码: %d, body: %s", resp.StatusCode, string(bodyBytes)),
			"获取GitHub文件失败: %s", s.path)
	}

	var response struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, wrapErrorf(err, "解析GitHub响应失败")
	}
	if response.Encoding != "" && response.Encoding != "base64" {
		return nil, fmt.Errorf("不支持的GitHub内容编码: %s", response.Encoding)
	}

	// GitHub 返回的 base64 每60字符一个换行, 解码时会被忽略
	decoded, err := base64.StdEncoding.DecodeString(response.Content)
	if err != nil {
		return nil, wrapErrorf(err, "base64解码失败")
	}
	return io.NopCloser(bytes.NewReader(decoded)), nil
}

func (s *githubBoardSource) String() string {
	return fmt.Sprintf("github:%s/%s/%s", s.owner, s.repo, s.path)
}
