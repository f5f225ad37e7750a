package service

import (
	"context"

	"fitplan/internal/domain"
	"fitplan/pkg/cache"
	"fitplan/pkg/logger"
	"fitplan/pkg/metrics"
)

// CachedUserService UserService'i read-through önbellek ile sarar.
// Yazma operasyonları ilgili anahtarları geçersiz kılar; önbellek
// erişilemez olduğunda tüm çağrılar doğrudan alt servise düşer.
type CachedUserService struct {
	userService domain.UserService
	cache       cache.Cache
	strategy    cache.CacheStrategy
	logger      logger.Logger
}

func NewCachedUserService(userService domain.UserService, c cache.Cache, logger logger.Logger) domain.UserService {
	return &CachedUserService{
		userService: userService,
		cache:       c,
		strategy:    cache.NewCacheManager(c, logger),
		logger:      logger,
	}
}

func (s *CachedUserService) Register(name, email, password string, age int, gender, experienceLevel string) (*domain.User, error) {
	user, err := s.userService.Register(name, email, password, age, gender, experienceLevel)
	if err != nil {
		return nil, err
	}

	s.invalidate(user.ID, user.Email)
	return user, nil
}

// Login önbelleklenmez; şifre doğrulaması her seferinde veri erişim
// katmanındaki güncel hash ile yapılmalı.
func (s *CachedUserService) Login(email, password string) (*domain.User, error) {
	return s.userService.Login(email, password)
}

func (s *CachedUserService) GetUserByID(id int64) (*domain.User, error) {
	ctx := context.Background()

	fetched := false
	var user domain.User
	err := s.strategy.ReadThrough(ctx, cache.UserCacheKey(id), &user, func() (interface{}, error) {
		fetched = true
		metrics.RecordCacheMiss("user_by_id")
		return s.userService.GetUserByID(id)
	}, cache.MediumExpiration)

	if err != nil {
		return nil, err
	}

	if !fetched {
		metrics.RecordCacheHit("user_by_id")
	}

	return &user, nil
}

func (s *CachedUserService) UpdateProfile(id int64, name string, age int, gender, experienceLevel string) (*domain.User, error) {
	user, err := s.userService.UpdateProfile(id, name, age, gender, experienceLevel)
	if err != nil {
		return nil, err
	}

	s.invalidate(id, user.Email)
	return user, nil
}

func (s *CachedUserService) ChangePassword(id int64, oldPassword, newPassword string) error {
	// Şifre hash'i hiçbir zaman önbelleğe girmediği için yalnızca delege eder.
	return s.userService.ChangePassword(id, oldPassword, newPassword)
}

func (s *CachedUserService) DeleteUser(id int64) error {
	if err := s.userService.DeleteUser(id); err != nil {
		return err
	}

	s.invalidate(id, "")
	return nil
}

func (s *CachedUserService) ListUsers() ([]*domain.User, error) {
	ctx := context.Background()

	fetched := false
	var users []*domain.User
	err := s.strategy.ReadThrough(ctx, cache.UserListKey, &users, func() (interface{}, error) {
		fetched = true
		metrics.RecordCacheMiss("user_list")
		return s.userService.ListUsers()
	}, cache.ShortExpiration)

	if err != nil {
		return nil, err
	}

	if !fetched {
		metrics.RecordCacheHit("user_list")
	}

	return users, nil
}

func (s *CachedUserService) invalidate(id int64, email string) {
	ctx := context.Background()
	if err := cache.InvalidateUserCache(ctx, s.cache, id, email); err != nil {
		s.logger.Warn("Kullanıcı önbelleği temizlenemedi", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	}
}
