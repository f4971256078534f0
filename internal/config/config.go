package config

import (
	"os"
	"strconv"
	"time"
)

// 进程级配置，Load 在启动时从环境变量读取，未设置时使用默认值。
var (
	// PageSize 所有分页列表共用的每页条数
	PageSize = 10
	// IndexCacheTTL 首页缓存有效期
	IndexCacheTTL = 20 * time.Second
	// MediaRoot 上传文件根目录
	MediaRoot = "./media"
	// MaxTextLen 帖子/评论正文最大长度
	MaxTextLen = 400
)

func Load() {
	if v := getenvInt("PAGE_SIZE"); v > 0 {
		PageSize = v
	}
	if v := getenvInt("INDEX_CACHE_TTL"); v > 0 {
		IndexCacheTTL = time.Duration(v) * time.Second
	}
	if v := os.Getenv("MEDIA_ROOT"); v != "" {
		MediaRoot = v
	}
	if v := getenvInt("MAX_TEXT_LEN"); v > 0 {
		MaxTextLen = v
	}
}

func getenvInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}
