// Package cache holds the vendor asset cache backing the /vendor/* CDN
// proxy. Fetched scripts are kept in Redis so restarts and replicas share
// one copy; without Redis an in-process map is used instead.
package cache

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/demandify-media/caller-voice-service/pkg/redis"
	"go.uber.org/zap"
)

// DefaultVendorTTL bounds how long a fetched CDN asset is served before
// re-fetching.
const DefaultVendorTTL = 24 * time.Hour

// VendorCache stores vendor JavaScript assets by cache key.
type VendorCache struct {
	redis redis.RedisServiceInterface
	ttl   time.Duration

	mutex sync.RWMutex
	local map[string][]byte
}

// NewVendorCache builds a cache. redisService may be nil, in which case only
// the in-process map is used.
func NewVendorCache(redisService redis.RedisServiceInterface, ttl time.Duration) *VendorCache {
	if ttl <= 0 {
		ttl = DefaultVendorTTL
	}
	return &VendorCache{
		redis: redisService,
		ttl:   ttl,
		local: make(map[string][]byte),
	}
}

// Get returns a cached asset body, if present.
func (c *VendorCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	body, ok := c.local[key]
	c.mutex.RUnlock()
	if ok {
		return body, true
	}

	if c.redis == nil {
		return nil, false
	}

	val, err := c.redis.GetValue(ctx, c.redis.GenerateKey(redis.VENDOR_ASSET, key))
	if err != nil {
		if err != redis.ErrKeyNotExist {
			logger.Base().Warn("Vendor cache redis read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	// Assets are stored base64-encoded; Redis values are strings.
	body, err = base64.StdEncoding.DecodeString(val)
	if err != nil {
		logger.Base().Warn("Vendor cache entry is corrupt, dropping", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	c.mutex.Lock()
	c.local[key] = body
	c.mutex.Unlock()
	return body, true
}

// Set stores an asset body under key.
func (c *VendorCache) Set(ctx context.Context, key string, body []byte) {
	c.mutex.Lock()
	c.local[key] = body
	c.mutex.Unlock()

	if c.redis == nil {
		return
	}

	encoded := base64.StdEncoding.EncodeToString(body)
	if err := c.redis.SetValue(ctx, c.redis.GenerateKey(redis.VENDOR_ASSET, key), encoded, c.ttl); err != nil {
		logger.Base().Warn("Vendor cache redis write failed", zap.String("key", key), zap.Error(err))
	}
}
