package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/renderer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rs  *renderer.Responder
	log *zap.Logger
}

func NewHealthHandler(db *gorm.DB, rs *renderer.Responder, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, rs: rs, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		h.rs.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
