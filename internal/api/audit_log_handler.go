package api

import (
	"net/http"
	"strconv"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
)

type AuditLogHandler struct {
	auditService domain.AuditLogService
	logger       logger.Logger
}

func NewAuditLogHandler(auditService domain.AuditLogService, logger logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditService: auditService,
		logger:       logger,
	}
}

func (h *AuditLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/audit-logs", h.GetAllLogs)
	mux.HandleFunc("GET /api/entity-logs", h.GetEntityLogs)
}

func (h *AuditLogHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	logs, err := h.auditService.GetAllLogs(page, pageSize)
	if err != nil {
		h.logger.Error("Denetim kayıtları getirilemedi", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "denetim kayıtları getirilemedi")
		return
	}

	if logs == nil {
		logs = []*domain.AuditLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

func (h *AuditLogHandler) GetEntityLogs(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	if entityType == "" {
		writeError(w, http.StatusBadRequest, "entity_type parametresi zorunludur")
		return
	}

	entityID, err := strconv.ParseInt(r.URL.Query().Get("entity_id"), 10, 64)
	if err != nil || entityID <= 0 {
		writeError(w, http.StatusBadRequest, "geçersiz entity_id parametresi")
		return
	}

	logs, err := h.auditService.GetEntityLogs(domain.EntityType(entityType), entityID)
	if err != nil {
		h.logger.Error("Denetim kayıtları getirilemedi", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "denetim kayıtları getirilemedi")
		return
	}

	if logs == nil {
		logs = []*domain.AuditLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}
