package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fitplan/internal/domain"
	"fitplan/pkg/cache"
	"fitplan/pkg/logger"
)

// fakeCache Redis yerine geçen bellek içi Cache.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.store[key]
	c.mu.Unlock()

	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (c *fakeCache) GetKeys(ctx context.Context, pattern string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.store))
	for k := range c.store {
		keys = append(keys, k)
	}
	return keys, nil
}

func (c *fakeCache) DeleteMultiple(ctx context.Context, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.store, k)
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

func newCachedTestService(t *testing.T) (domain.UserService, *fakeUserRepo, *fakeCache) {
	t.Helper()

	repo := newFakeUserRepo()
	audit := &fakeAuditService{}
	log := logger.New(logger.ErrorLevel, io.Discard)
	inner := NewUserService(repo, audit, NewBcryptHasher(bcrypt.MinCost), log)
	fc := newFakeCache()

	return NewCachedUserService(inner, fc, log), repo, fc
}

func TestCachedGetUserByID(t *testing.T) {
	svc, repo, fc := newCachedTestService(t)

	registered, err := svc.Register("Ayşe", "ayse@example.com", "gizli123", 28, "female", "beginner")
	require.NoError(t, err)

	t.Run("ilk okuma önbelleği doldurur", func(t *testing.T) {
		user, err := svc.GetUserByID(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ayşe", user.Name)

		assert.True(t, fc.has(cache.UserCacheKey(registered.ID)))
	})

	t.Run("ikinci okuma önbellekten gelir", func(t *testing.T) {
		// Veri erişim katmanındaki kaydı değiştir; önbellek eski hali dönmeli.
		require.NoError(t, repo.UpdateProfile(registered.ID, "Değişti", 99, "", ""))

		user, err := svc.GetUserByID(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ayşe", user.Name)
	})

	t.Run("profil güncellemesi önbelleği geçersiz kılar", func(t *testing.T) {
		_, err := svc.UpdateProfile(registered.ID, "Yeni Ayşe", 29, "female", "advanced")
		require.NoError(t, err)

		user, err := svc.GetUserByID(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "Yeni Ayşe", user.Name)
	})
}

func TestCachedListUsers(t *testing.T) {
	svc, _, fc := newCachedTestService(t)

	_, err := svc.Register("Bir", "bir@example.com", "sifre1", 20, "", "")
	require.NoError(t, err)

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, fc.has(cache.UserListKey))

	// Yeni kayıt liste anahtarını geçersiz kılar.
	_, err = svc.Register("İki", "iki@example.com", "sifre2", 21, "", "")
	require.NoError(t, err)
	assert.False(t, fc.has(cache.UserListKey))

	users, err = svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestCachedDeleteInvalidates(t *testing.T) {
	svc, _, fc := newCachedTestService(t)

	registered, err := svc.Register("Can", "can@example.com", "sifre321", 22, "male", "beginner")
	require.NoError(t, err)

	_, err = svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	require.True(t, fc.has(cache.UserCacheKey(registered.ID)))

	require.NoError(t, svc.DeleteUser(registered.ID))
	assert.False(t, fc.has(cache.UserCacheKey(registered.ID)))

	_, err = svc.GetUserByID(registered.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCachedLoginBypassesCache(t *testing.T) {
	svc, _, fc := newCachedTestService(t)

	_, err := svc.Register("Fatma", "fatma@example.com", "eskisifre", 31, "female", "intermediate")
	require.NoError(t, err)

	user, err := svc.Login("fatma@example.com", "eskisifre")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	// Giriş hiçbir anahtar yazmaz.
	assert.False(t, fc.has(cache.UserCacheKeyByEmail("fatma@example.com")))
}
