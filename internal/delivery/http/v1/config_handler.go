package v1

import (
	"net/http"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/cache"
	"orderdesk-backend/pkg/utils"
)

type ConfigHandler struct {
	cache cache.CacheService
}

func NewConfigHandler(cache cache.CacheService) *ConfigHandler {
	return &ConfigHandler{cache: cache}
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	cacheKey := "system:config:enums"

	w.Header().Set("Cache-Control", "public, max-age=3600")
	if val, found := h.cache.Get(cacheKey); found {
		utils.WriteJSON(w, http.StatusOK, val)
		return
	}

	enums := domain.CurrentEnums()
	h.cache.Set(cacheKey, enums, time.Hour)
	utils.WriteJSON(w, http.StatusOK, enums)
}
