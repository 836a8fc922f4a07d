package utils

import (
	"testing"
	"time"
)

func TestCacheTTL(t *testing.T) {
	c, err := NewCache(10)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", "v", time.Minute)
	if got := c.Get("k"); got != "v" {
		t.Fatalf("expected cached value, got %v", got)
	}

	now = now.Add(2 * time.Minute)
	if got := c.Get("k"); got != nil {
		t.Errorf("expected expired entry, got %v", got)
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed, len=%d", c.Len())
	}
}

func TestCacheZeroTTLDisables(t *testing.T) {
	c, _ := NewCache(10)
	c.Set("k", "v", 0)
	if c.Get("k") != nil || c.Len() != 0 {
		t.Error("ttl <= 0 should not store anything")
	}
}

func TestCacheEvictsAndDeletes(t *testing.T) {
	c, _ := NewCache(2)
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, time.Hour)
	if c.Get("a") != nil {
		t.Error("least recently used entry should be evicted")
	}
	c.Delete("b")
	if c.Get("b") != nil || c.Get("c") != 3 {
		t.Error("unexpected cache contents after delete")
	}
}

func TestGetCacheSingleton(t *testing.T) {
	if GetCache() != GetCache() {
		t.Error("GetCache should return the same instance")
	}
}
