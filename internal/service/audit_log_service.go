package service

import (
	"fmt"
	"time"

	"fitplan/internal/concurrent"
	"fitplan/internal/domain"
	"fitplan/pkg/logger"
)

// AuditLogService denetim kayıtlarını işçi havuzu üzerinden asenkron yazar;
// denetim yazımındaki bir hata kullanıcı operasyonunu asla başarısız kılmaz.
type AuditLogService struct {
	repo   domain.AuditLogRepository
	pool   *concurrent.WorkerPool
	logger logger.Logger
}

func NewAuditLogService(repo domain.AuditLogRepository, pool *concurrent.WorkerPool, logger logger.Logger) domain.AuditLogService {
	return &AuditLogService{
		repo:   repo,
		pool:   pool,
		logger: logger,
	}
}

func (s *AuditLogService) LogAction(entityType domain.EntityType, entityID int64, action domain.ActionType, details string) {
	entry := &domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now(),
	}

	if s.pool == nil || !s.pool.Submit(entry) {
		// Havuz yoksa ya da kuyruk doluysa senkron yaz.
		if err := s.repo.Create(entry); err != nil {
			s.logger.Error("Denetim kaydı oluşturulamadı", map[string]interface{}{
				"entity_type": entityType,
				"entity_id":   entityID,
				"action":      action,
				"error":       err.Error(),
			})
		}
	}
}

func (s *AuditLogService) GetEntityLogs(entityType domain.EntityType, entityID int64) ([]*domain.AuditLog, error) {
	logs, err := s.repo.FindByEntityID(entityType, entityID)
	if err != nil {
		s.logger.Error("Denetim kayıtları bulunamadı", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("denetim kayıtları bulunamadı: %w", err)
	}

	return logs, nil
}

func (s *AuditLogService) GetAllLogs(page, pageSize int) ([]*domain.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize
	limit := pageSize

	logs, err := s.repo.FindAll(limit, offset)
	if err != nil {
		s.logger.Error("Denetim kayıtları bulunamadı", map[string]interface{}{
			"page":      page,
			"page_size": pageSize,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("denetim kayıtları bulunamadı: %w", err)
	}

	return logs, nil
}
