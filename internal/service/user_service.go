package service

import (
	"errors"
	"fmt"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
	"fitplan/pkg/metrics"
)

// UserService hesap iş kurallarını veri erişim katmanının üstünde uygular.
// Düz metin şifreye dokunan tek bileşen budur; şifreler hiçbir zaman
// loglanmaz ve hash'lenmeden kalıcı hale getirilmez.
type UserService struct {
	repo   domain.UserRepository
	audit  domain.AuditLogService
	hasher domain.PasswordHasher
	logger logger.Logger
}

func NewUserService(
	repo domain.UserRepository,
	audit domain.AuditLogService,
	hasher domain.PasswordHasher,
	logger logger.Logger,
) domain.UserService {
	return &UserService{
		repo:   repo,
		audit:  audit,
		hasher: hasher,
		logger: logger,
	}
}

// Register önce e-posta kontrolü yapar, sonra şifreyi hash'leyip kaydı
// oluşturur. Kontrol ile INSERT arası transaction'sızdır; aynı e-postayla
// eşzamanlı iki kayıt denemesinin asıl güvencesi users.email üzerindeki
// UNIQUE kısıtıdır (ihlal de ErrEmailTaken olarak döner).
func (s *UserService) Register(name, email, password string, age int, gender, experienceLevel string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("E-posta kontrolü sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		metrics.RecordAccountOperation("register", "failure")
		return nil, fmt.Errorf("kayıt başarısız: %w", err)
	}

	if existing != nil {
		metrics.RecordAccountOperation("register", "rejected")
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Şifre hash'lenemedi", map[string]interface{}{"error": err.Error()})
		metrics.RecordAccountOperation("register", "failure")
		return nil, fmt.Errorf("kayıt başarısız: %w", err)
	}

	user := &domain.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		Age:             age,
		Gender:          gender,
		ExperienceLevel: experienceLevel,
	}

	id, err := s.repo.Create(user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RecordAccountOperation("register", "rejected")
			return nil, domain.ErrEmailTaken
		}
		s.logger.Error("Kullanıcı oluşturma sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		metrics.RecordAccountOperation("register", "failure")
		return nil, fmt.Errorf("kayıt başarısız: %w", err)
	}

	s.audit.LogAction(domain.EntityTypeUser, id, domain.ActionTypeCreate,
		fmt.Sprintf("Kullanıcı kaydedildi: %s", email))

	metrics.RecordAccountOperation("register", "success")

	return &domain.User{
		ID:    id,
		Name:  name,
		Email: email,
	}, nil
}

// Login hem bilinmeyen e-posta hem yanlış şifre için aynı hatayı döner;
// hangi e-postaların kayıtlı olduğu dışarı sızmaz.
func (s *UserService) Login(email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("Giriş sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		metrics.RecordAccountOperation("login", "failure")
		return nil, fmt.Errorf("giriş yapılamadı: %w", err)
	}

	if user == nil {
		metrics.RecordAccountOperation("login", "rejected")
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		metrics.RecordAccountOperation("login", "rejected")
		return nil, domain.ErrInvalidCredentials
	}

	metrics.RecordAccountOperation("login", "success")

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) GetUserByID(id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

// UpdateProfile güncellemeyi delege eder, ardından kaydı yeniden okuyup
// döner. Veri erişim katmanı var olmayan ID için sessizce başarı dönse de
// yeniden okuma eksik kaydı ErrUserNotFound olarak yüzeye çıkarır.
func (s *UserService) UpdateProfile(id int64, name string, age int, gender, experienceLevel string) (*domain.User, error) {
	if err := s.repo.UpdateProfile(id, name, age, gender, experienceLevel); err != nil {
		s.logger.Error("Profil güncellemesi sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("profil güncellenemedi: %w", err)
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(domain.EntityTypeUser, id, domain.ActionTypeUpdate,
		fmt.Sprintf("Profil güncellendi: %s", user.Email))

	return user, nil
}

func (s *UserService) ChangePassword(id int64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByIDWithPassword(id)
	if err != nil {
		s.logger.Error("Şifre değiştirme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("şifre değiştirilemedi: %w", err)
	}

	if user == nil {
		return domain.ErrUserNotFound
	}

	if !s.hasher.Check(oldPassword, user.PasswordHash) {
		return domain.ErrCurrentPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("Şifre hash'lenemedi", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("şifre değiştirilemedi: %w", err)
	}

	if err := s.repo.UpdatePassword(id, hash); err != nil {
		s.logger.Error("Şifre güncellemesi sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("şifre değiştirilemedi: %w", err)
	}

	s.audit.LogAction(domain.EntityTypeUser, id, domain.ActionTypeUpdate, "Şifre değiştirildi")

	return nil
}

func (s *UserService) DeleteUser(id int64) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Kullanıcı silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	if existing == nil {
		return domain.ErrUserNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Kullanıcı silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	s.audit.LogAction(domain.EntityTypeUser, id, domain.ActionTypeDelete,
		fmt.Sprintf("Kullanıcı silindi: %s", existing.Email))

	return nil
}

func (s *UserService) ListUsers() ([]*domain.User, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		s.logger.Error("Kullanıcılar listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}

	return users, nil
}
