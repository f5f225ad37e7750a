package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
	"fitplan/pkg/metrics"
)

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(user *domain.User) (int64, error) {
	defer record("create")()

	query := `
		INSERT INTO users (name, email, password_hash, age, gender, experience_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	user.CreatedAt = time.Now()

	result, err := r.db.Exec(
		query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Gender,
		user.ExperienceLevel,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrEmailTaken
		}
		r.logger.Error("Kullanıcı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return 0, domain.NewPersistenceError("kullanıcı oluşturulamadı", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("Kullanıcı ID'si alınamadı", map[string]interface{}{"error": err.Error()})
		return 0, domain.NewPersistenceError("kullanıcı ID'si alınamadı", err)
	}

	user.ID = id
	return id, nil
}

// FindByEmail şifre hash'i dahil tam satırı döner; sadece servis
// katmanının kimlik doğrulama akışları için.
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	defer record("find_by_email")()

	query := `SELECT id, name, email, password_hash, age, gender, experience_level, created_at FROM users WHERE email = ?`

	var user domain.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Gender,
		&user.ExperienceLevel,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Kullanıcı e-posta adresine göre bulunamadı", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, domain.NewPersistenceError("kullanıcı e-posta adresine göre bulunamadı", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByID(id int64) (*domain.User, error) {
	defer record("find_by_id")()

	query := `SELECT id, name, email, age, gender, experience_level, created_at FROM users WHERE id = ?`

	var user domain.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Age,
		&user.Gender,
		&user.ExperienceLevel,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, domain.NewPersistenceError("kullanıcı ID'ye göre bulunamadı", err)
	}

	return &user, nil
}

// FindByIDWithPassword şifre değiştirme akışının iç varyantı; hash'i de okur.
func (r *UserRepository) FindByIDWithPassword(id int64) (*domain.User, error) {
	defer record("find_by_id_with_password")()

	query := `SELECT id, name, email, password_hash, age, gender, experience_level, created_at FROM users WHERE id = ?`

	var user domain.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Gender,
		&user.ExperienceLevel,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, domain.NewPersistenceError("kullanıcı ID'ye göre bulunamadı", err)
	}

	return &user, nil
}

// UpdateProfile dört profil alanını koşulsuz günceller. Var olmayan bir
// ID için sessizce başarı döner; varlık kontrolü servis katmanının işidir.
func (r *UserRepository) UpdateProfile(id int64, name string, age int, gender, experienceLevel string) error {
	defer record("update_profile")()

	query := `
		UPDATE users
		SET name = ?, age = ?, gender = ?, experience_level = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, name, age, gender, experienceLevel, id)
	if err != nil {
		r.logger.Error("Kullanıcı profili güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.NewPersistenceError("kullanıcı profili güncellenemedi", err)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	defer record("update_password")()

	query := `
		UPDATE users
		SET password_hash = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		r.logger.Error("Kullanıcı şifresi güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.NewPersistenceError("kullanıcı şifresi güncellenemedi", err)
	}

	return nil
}

func (r *UserRepository) Delete(id int64) error {
	defer record("delete")()

	query := `DELETE FROM users WHERE id = ?`

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Error("Kullanıcı silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.NewPersistenceError("kullanıcı silinemedi", err)
	}

	return nil
}

// FindAll hash hariç tüm kullanıcıları ID sırasıyla döner; yönetim amaçlı.
func (r *UserRepository) FindAll() ([]*domain.User, error) {
	defer record("find_all")()

	query := `SELECT id, name, email, age, gender, experience_level, created_at FROM users ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Kullanıcılar listelenemedi", map[string]interface{}{"error": err.Error()})
		return nil, domain.NewPersistenceError("kullanıcılar listelenemedi", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User

		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Age,
			&user.Gender,
			&user.ExperienceLevel,
			&user.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Kullanıcı verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, domain.NewPersistenceError("kullanıcı verileri okunamadı", err)
		}

		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, domain.NewPersistenceError("kullanıcı verileri okunamadı", err)
	}

	return users, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func record(operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDatabaseOperation(operation, "user", time.Since(start))
	}
}
