package api

import (
	"net/http"

	"fitplan/pkg/cache"
	"fitplan/pkg/logger"
)

// CacheHandler önbellek için yönetim uçları sunar; sorun ayıklama ve
// elle geçersiz kılma amaçlıdır.
type CacheHandler struct {
	cache  cache.Cache
	logger logger.Logger
}

func NewCacheHandler(cache cache.Cache, logger logger.Logger) *CacheHandler {
	return &CacheHandler{
		cache:  cache,
		logger: logger,
	}
}

func (h *CacheHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cache/keys", h.GetKeys)
	mux.HandleFunc("DELETE /api/cache", h.InvalidatePattern)
}

func (h *CacheHandler) GetKeys(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		pattern = "*"
	}

	keys, err := h.cache.GetKeys(r.Context(), pattern)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "önbellek anahtarları okunamadı")
		return
	}

	if keys == nil {
		keys = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern": pattern,
		"count":   len(keys),
		"keys":    keys,
	})
}

func (h *CacheHandler) InvalidatePattern(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		writeError(w, http.StatusBadRequest, "pattern parametresi zorunludur")
		return
	}

	if err := h.cache.DeletePattern(r.Context(), pattern); err != nil {
		writeError(w, http.StatusInternalServerError, "önbellek temizlenemedi")
		return
	}

	h.logger.Info("Önbellek deseni temizlendi", map[string]interface{}{"pattern": pattern})

	writeJSON(w, http.StatusOK, map[string]string{"message": "önbellek temizlendi"})
}
