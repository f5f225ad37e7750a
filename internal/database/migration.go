package database

import (
	"database/sql"
	"fmt"

	"fitplan/pkg/logger"
)

// MigrationService şema migrasyonlarını uygular. Uygulanan migrasyonlar
// migrations tablosunda izlenir; aynı migrasyon iki kez çalışmaz.
type MigrationService struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMigrationService(db *sql.DB, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
	}
}

func (m *MigrationService) CreateMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`

	if _, err := m.db.Exec(query); err != nil {
		return fmt.Errorf("migrations tablosu oluşturulamadı: %w", err)
	}

	return nil
}

func (m *MigrationService) ApplyMigration(name, migrationSQL string) error {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", name).Scan(&count)
	if err != nil {
		return fmt.Errorf("migrasyon durumu okunamadı: %w", err)
	}

	if count > 0 {
		m.logger.Debug("Migrasyon zaten uygulanmış", map[string]interface{}{"name": name})
		return nil
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("migrasyon transaction başlatılamadı: %w", err)
	}

	if _, err := tx.Exec(migrationSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migrasyon uygulanamadı (%s): %w", name, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migrasyon kaydedilemedi (%s): %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrasyon commit edilemedi (%s): %w", name, err)
	}

	m.logger.Info("Migrasyon uygulandı", map[string]interface{}{"name": name})
	return nil
}

// RunMigrations tüm şema migrasyonlarını sırayla uygular.
func (m *MigrationService) RunMigrations() error {
	if err := m.CreateMigrationsTable(); err != nil {
		return err
	}

	migrations := []struct {
		name string
		sql  string
	}{
		{"001_create_users_table", createUsersTable},
		{"002_create_audit_logs_table", createAuditLogsTable},
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(migration.name, migration.sql); err != nil {
			return err
		}
	}

	return nil
}

// users.email üzerindeki UNIQUE kısıtı eşzamanlı kayıt denemelerine
// karşı asıl güvencedir; servis katmanındaki ön kontrol yalnızca
// erken ve okunur bir hata sağlar.
const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

const createAuditLogsTable = `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_type TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
