package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache 本地 LRU 缓存封装，带 TTL
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
	now      func() time.Time
}

var (
	cacheInstance *Cache
	cacheOnce     sync.Once
)

// NewCache 创建指定容量的缓存
func NewCache(size int) (*Cache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lruCache: l, now: time.Now}, nil
}

// GetCache 获取单例缓存实例
func GetCache() *Cache {
	cacheOnce.Do(func() {
		// 创建一个容量为 500 的 LRU 缓存
		c, err := NewCache(500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = c
	})
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间；ttl <= 0 时不写入
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: c.now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Len 当前缓存条目数（含未清理的过期项）
func (c *Cache) Len() int {
	return c.lruCache.Len()
}
