// Author: 游钓四方 <haibao1027@gmail.com>
// File: config.go
// Description: 统一加载本项目所需的配置(环境变量 / .env), 并在此处集中校验

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultTopTenURL = "http://www.newsmth.net/nForum/rss/topten"
	defaultBoardURL  = "http://www.newsmth.net/nForum/rss/board-%s"

	sourceLocal  = "LOCAL"
	sourceCOS    = "COS"
	sourceGitHub = "GITHUB"
)

// Config 用于存放本项目需要的所有配置
type Config struct {
	// RSS 相关
	TopTenURL   string        // 十大热门话题的RSS地址
	BoardURL    string        // 版面RSS地址模板, 必须包含一个 %s 用于填充版面ID
	FeedCharset string        // RSS正文的字符集, 水木为 gb18030
	HTTPTimeout time.Duration // 为0时不设置超时, 使用默认Transport

	// 版面索引相关:
	// 当 BoardsSource = "LOCAL" 时, BoardsHTML 为本地路径, 如 "boards.html"
	// 当 BoardsSource = "COS" 时, BoardsHTML 为COS对象的完整地址
	// 当 BoardsSource = "GITHUB" 时, BoardsHTML 为仓库内的文件路径
	CacheFile    string
	BoardsSource string
	BoardsHTML   string

	// 腾讯云相关, 仅在 BoardsSource = "COS" 时需要
	TencentSecretID  string
	TencentSecretKey string

	// GitHub 相关, 仅在 BoardsSource = "GITHUB" 时需要; 公开仓库可不设 token
	GitHubToken string
	GitHubName  string
	GitHubRepo  string

	LogLevel string
}

// LoadConfig 从 .env 和环境变量中加载配置
//
// Description:
//
//	除腾讯云密钥外, 所有键都带 SMTH_ 前缀, 例如 SMTH_CACHE_FILE
//	该函数只做读取和默认值处理, 校验请调用 cfg.Validate()
func LoadConfig() *Config {
	// .env 文件是可选的
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SMTH")
	v.AutomaticEnv()

	v.SetDefault("TOPTEN_URL", defaultTopTenURL)
	v.SetDefault("BOARD_URL", defaultBoardURL)
	v.SetDefault("FEED_CHARSET", "gb18030")
	v.SetDefault("HTTP_TIMEOUT", time.Duration(0))
	v.SetDefault("CACHE_FILE", "boards.json")
	v.SetDefault("BOARDS_SOURCE", sourceLocal)
	v.SetDefault("BOARDS_HTML", "boards.html")
	v.SetDefault("LOG_LEVEL", "warn")

	// 腾讯云密钥沿用无前缀的变量名
	_ = v.BindEnv("TENCENT_CLOUD_SECRET_ID", "TENCENT_CLOUD_SECRET_ID")
	_ = v.BindEnv("TENCENT_CLOUD_SECRET_KEY", "TENCENT_CLOUD_SECRET_KEY")

	return &Config{
		TopTenURL:   v.GetString("TOPTEN_URL"),
		BoardURL:    v.GetString("BOARD_URL"),
		FeedCharset: v.GetString("FEED_CHARSET"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),

		CacheFile:    v.GetString("CACHE_FILE"),
		BoardsSource: strings.ToUpper(v.GetString("BOARDS_SOURCE")),
		BoardsHTML:   v.GetString("BOARDS_HTML"),

		TencentSecretID:  v.GetString("TENCENT_CLOUD_SECRET_ID"),
		TencentSecretKey: v.GetString("TENCENT_CLOUD_SECRET_KEY"),

		GitHubToken: v.GetString("GITHUB_TOKEN"),
		GitHubName:  v.GetString("GITHUB_NAME"),
		GitHubRepo:  v.GetString("GITHUB_REPO"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

// Validate 对当前配置进行合法性校验, 一次性返回所有缺失或非法的配置项
func (cfg *Config) Validate() error {
	var missing []string

	if cfg.TopTenURL == "" {
		missing = append(missing, "SMTH_TOPTEN_URL")
	}
	if !strings.Contains(cfg.BoardURL, "%s") {
		missing = append(missing, "SMTH_BOARD_URL(需包含%s)")
	}
	if cfg.CacheFile == "" {
		missing = append(missing, "SMTH_CACHE_FILE")
	}
	if cfg.BoardsHTML == "" {
		missing = append(missing, "SMTH_BOARDS_HTML")
	}

	switch cfg.BoardsSource {
	case sourceLocal:
	case sourceCOS:
		if cfg.TencentSecretID == "" {
			missing = append(missing, "TENCENT_CLOUD_SECRET_ID")
		}
		if cfg.TencentSecretKey == "" {
			missing = append(missing, "TENCENT_CLOUD_SECRET_KEY")
		}
	case sourceGitHub:
		if cfg.GitHubName == "" {
			missing = append(missing, "SMTH_GITHUB_NAME")
		}
		if cfg.GitHubRepo == "" {
			missing = append(missing, "SMTH_GITHUB_REPO")
		}
	default:
		missing = append(missing, "SMTH_BOARDS_SOURCE(LOCAL/COS/GITHUB)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("配置缺失或非法: %v", missing)
	}
	return nil
}

// applyDefaults 将校验失败的配置项恢复为默认值, 保证程序总能给出结果
func (cfg *Config) applyDefaults() {
	if cfg.TopTenURL == "" {
		cfg.TopTenURL = defaultTopTenURL
	}
	if !strings.Contains(cfg.BoardURL, "%s") {
		cfg.BoardURL = defaultBoardURL
	}
	if cfg.CacheFile == "" {
		cfg.CacheFile = "boards.json"
	}
	if cfg.BoardsSource == sourceCOS && (cfg.TencentSecretID == "" || cfg.TencentSecretKey == "") {
		cfg.BoardsSource = sourceLocal
		cfg.BoardsHTML = ""
	}
	if cfg.BoardsSource == sourceGitHub && (cfg.GitHubName == "" || cfg.GitHubRepo == "") {
		cfg.BoardsSource = sourceLocal
		cfg.BoardsHTML = ""
	}
	if cfg.BoardsSource != sourceCOS && cfg.BoardsSource != sourceGitHub {
		cfg.BoardsSource = sourceLocal
	}
	if cfg.BoardsHTML == "" {
		cfg.BoardsHTML = "boards.html"
	}
}
