package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Item 包装缓存数据和过期时间
type Item struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Service 本地 key/TTL 缓存，由 main 构造后注入到需要它的 handler，
// 不作为包级全局状态访问。
type Service struct {
	lruCache *lru.Cache[string, Item]
}

func New(size int) (*Service, error) {
	l, err := lru.New[string, Item](size)
	if err != nil {
		return nil, err
	}
	return &Service{lruCache: l}, nil
}

// Set 设置缓存，TTL 为过期时间
func (s *Service) Set(key string, data interface{}, ttl time.Duration) {
	s.lruCache.Add(key, Item{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (s *Service) Get(key string) interface{} {
	val, ok := s.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		s.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Clear 删除指定缓存
func (s *Service) Clear(key string) {
	s.lruCache.Remove(key)
}
