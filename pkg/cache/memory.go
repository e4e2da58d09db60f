package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryCacheSize số key tối đa của MemoryCache
const DefaultMemoryCacheSize = 1024

// MemoryCache là in-process implementation của Cache trên expirable LRU
// Value được lưu dạng JSON giống Redis để caller không share pointer với cache
// TTL cố định cho cả cache, tham số ttl của Set bị bỏ qua
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache ttl <= 0: entry không hết hạn, chỉ bị đẩy ra khi đầy
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := m.lru.Get(key)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed for key %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed for key %s: %w", key, err)
	}

	m.lru.Add(key, payload)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.lru.Remove(key)
	}
	return nil
}

// DeletePattern dùng glob giống redis SCAN MATCH
func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid cache pattern %q: %w", pattern, err)
	}

	for _, key := range m.lru.Keys() {
		if matched, _ := path.Match(pattern, key); matched {
			m.lru.Remove(key)
		}
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

// NoopCache luôn miss, dùng khi CACHE_DRIVER=none
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, ...string) error { return nil }
func (NoopCache) DeletePattern(context.Context, string) error { return nil }
func (NoopCache) Ping(context.Context) error { return nil }
