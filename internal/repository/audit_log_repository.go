package repository

import (
	"database/sql"
	"time"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
)

type AuditLogRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAuditLogRepository(db *sql.DB, logger logger.Logger) domain.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditLogRepository) Create(log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	log.CreatedAt = time.Now()

	result, err := r.db.Exec(
		query,
		string(log.EntityType),
		log.EntityID,
		string(log.Action),
		log.Details,
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Denetim kaydı oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return domain.NewPersistenceError("denetim kaydı oluşturulamadı", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		log.ID = id
	}

	return nil
}

func (r *AuditLogRepository) FindByEntityID(entityType domain.EntityType, entityID int64) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM audit_logs
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, string(entityType), entityID)
	if err != nil {
		r.logger.Error("Denetim kayıtları bulunamadı", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		return nil, domain.NewPersistenceError("denetim kayıtları bulunamadı", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows, r.logger)
}

func (r *AuditLogRepository) FindAll(limit, offset int) ([]*domain.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Denetim kayıtları bulunamadı", map[string]interface{}{
			"limit":  limit,
			"offset": offset,
			"error":  err.Error(),
		})
		return nil, domain.NewPersistenceError("denetim kayıtları bulunamadı", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows, r.logger)
}

func scanAuditLogs(rows *sql.Rows, log logger.Logger) ([]*domain.AuditLog, error) {
	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		var entry domain.AuditLog
		var entityTypeStr, actionStr string

		err := rows.Scan(
			&entry.ID,
			&entityTypeStr,
			&entry.EntityID,
			&actionStr,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			log.Error("Denetim kaydı verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, domain.NewPersistenceError("denetim kaydı verileri okunamadı", err)
		}

		entry.EntityType = domain.EntityType(entityTypeStr)
		entry.Action = domain.ActionType(actionStr)

		logs = append(logs, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, domain.NewPersistenceError("denetim kaydı verileri okunamadı", err)
	}

	return logs, nil
}
