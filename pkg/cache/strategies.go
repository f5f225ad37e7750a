package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitplan/pkg/logger"
)

// Cache key constants
const (
	UserPrefix     = "user"
	UserByIDKey    = "user:id:%d"
	UserByEmailKey = "user:email:%s"
	UserListKey    = "user:all"

	AuditPrefix = "audit"
)

// Cache expiration times
const (
	ShortExpiration  = 5 * time.Minute
	MediumExpiration = 30 * time.Minute
	LongExpiration   = 2 * time.Hour
)

// CacheStrategy defines the caching pattern used by the service decorators.
// Yazma tarafı write-through yerine anahtar geçersiz kılma kullanır;
// bkz. InvalidateUserCache.
type CacheStrategy interface {
	// Read-through: Check cache first, if miss then fetch from source and cache it
	ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error
}

type CacheManager struct {
	cache  Cache
	logger logger.Logger
}

func NewCacheManager(cache Cache, logger logger.Logger) CacheStrategy {
	return &CacheManager{
		cache:  cache,
		logger: logger,
	}
}

func (cm *CacheManager) ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error {
	err := cm.cache.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	if err != ErrCacheMiss {
		cm.logger.Error("Cache error in read-through", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		// Önbellek hatasına rağmen kaynağa devam et
	}

	data, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := cm.cache.Set(ctx, key, data, expiration); err != nil {
		cm.logger.Error("Cache set error in read-through", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return copyData(data, dest)
}

// Helper functions for cache key generation
func UserCacheKey(userID int64) string {
	return fmt.Sprintf(UserByIDKey, userID)
}

func UserCacheKeyByEmail(email string) string {
	return fmt.Sprintf(UserByEmailKey, email)
}

// InvalidateUserCache bir kullanıcıya ait tüm önbellek anahtarlarını
// (ID, e-posta, liste) temizler.
func InvalidateUserCache(ctx context.Context, cache Cache, userID int64, email string) error {
	keys := []string{
		UserCacheKey(userID),
		UserListKey,
	}
	if email != "" {
		keys = append(keys, UserCacheKeyByEmail(email))
	}
	return cache.DeleteMultiple(ctx, keys)
}

func copyData(src, dest interface{}) error {
	switch d := dest.(type) {
	case *interface{}:
		*d = src
		return nil
	default:
		data, err := json.Marshal(src)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dest)
	}
}
