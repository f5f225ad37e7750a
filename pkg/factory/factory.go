package factory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"fitplan/internal/concurrent"
	"fitplan/internal/config"
	"fitplan/internal/database"
	"fitplan/internal/domain"
	"fitplan/internal/repository"
	"fitplan/internal/service"
	"fitplan/pkg/cache"
	"fitplan/pkg/logger"
)

// Factory tüm bağımlılıkları tek noktadan kurar ve yaşam döngüsünü yönetir.
type Factory struct {
	cfg    *config.Config
	logger logger.Logger

	db          *sql.DB
	redisClient *redis.Client
	cache       cache.Cache

	userRepo     domain.UserRepository
	auditRepo    domain.AuditLogRepository
	auditPool    *concurrent.WorkerPool
	userService  domain.UserService
	auditService domain.AuditLogService
}

func New() (*Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("yapılandırma yüklenemedi: %w", err)
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), os.Stdout)

	f := &Factory{cfg: cfg, logger: log}

	if err := f.initDatabase(); err != nil {
		return nil, err
	}

	f.initCache()
	f.initRepositories()
	f.initServices()

	return f, nil
}

func (f *Factory) initDatabase() error {
	db, err := sql.Open("sqlite3", f.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("veritabanı açılamadı: %w", err)
	}

	// SQLite tek yazar destekler; bağlantı havuzunu buna göre sınırla.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	f.logger.Info("Veritabanı bağlantısı kuruldu", map[string]interface{}{
		"path": f.cfg.Database.Path,
	})

	f.db = db
	return nil
}

func (f *Factory) initCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", f.cfg.Redis.Host, f.cfg.Redis.Port),
		Password: f.cfg.Redis.Password,
		DB:       f.cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Önbellek opsiyonel; Redis yoksa servis önbelleksiz çalışır.
		f.logger.Warn("Redis'e bağlanılamadı, önbellek devre dışı", map[string]interface{}{
			"addr":  client.Options().Addr,
			"error": err.Error(),
		})
		_ = client.Close()
		return
	}

	f.redisClient = client
	f.cache = cache.NewRedisCache(client, f.logger, "fitplan")

	f.logger.Info("Redis bağlantısı kuruldu", map[string]interface{}{
		"addr": client.Options().Addr,
	})
}

func (f *Factory) initRepositories() {
	f.userRepo = repository.NewUserRepository(f.db, f.logger)
	f.auditRepo = repository.NewAuditLogRepository(f.db, f.logger)
}

func (f *Factory) initServices() {
	f.auditPool = concurrent.NewWorkerPool(
		f.cfg.Audit.Workers,
		f.cfg.Audit.QueueSize,
		f.auditRepo.Create,
		f.logger,
	)
	f.auditPool.Start()

	f.auditService = service.NewAuditLogService(f.auditRepo, f.auditPool, f.logger)

	hasher := service.NewBcryptHasher(service.DefaultHashCost)
	userService := service.NewUserService(f.userRepo, f.auditService, hasher, f.logger)

	if f.cache != nil {
		userService = service.NewCachedUserService(userService, f.cache, f.logger)
	}

	f.userService = userService
}

// RunMigrations şemayı günceller; sunucu açılışında bir kez çağrılır.
func (f *Factory) RunMigrations() error {
	migrationService := database.NewMigrationService(f.db, f.logger)
	return migrationService.RunMigrations()
}

func (f *Factory) Config() *config.Config             { return f.cfg }
func (f *Factory) Logger() logger.Logger              { return f.logger }
func (f *Factory) DB() *sql.DB                        { return f.db }
func (f *Factory) Cache() cache.Cache                 { return f.cache }
func (f *Factory) UserService() domain.UserService    { return f.userService }
func (f *Factory) AuditService() domain.AuditLogService {
	return f.auditService
}
func (f *Factory) AuditPool() *concurrent.WorkerPool { return f.auditPool }

// Close kaynakları ters sırada kapatır; önce işçi havuzu boşalır ki
// kuyruktaki denetim kayıtları veritabanına yazılabilsin.
func (f *Factory) Close() {
	if f.auditPool != nil {
		f.auditPool.Stop()
	}

	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			f.logger.Error("Redis bağlantısı kapatılamadı", map[string]interface{}{"error": err.Error()})
		}
	}

	if f.db != nil {
		if err := f.db.Close(); err != nil {
			f.logger.Error("Veritabanı bağlantısı kapatılamadı", map[string]interface{}{"error": err.Error()})
		}
	}
}
