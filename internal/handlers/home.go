// internal/handlers/home.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/bookreview/internal/i18n"
	"github.com/javajoker/bookreview/internal/services"
	"github.com/javajoker/bookreview/internal/utils"
)

const recentItems = 5

type HomeHandler struct {
	dashboardService *services.DashboardService
	db               *gorm.DB
	version          string
}

func NewHomeHandler(dashboardService *services.DashboardService, db *gorm.DB, version string) *HomeHandler {
	return &HomeHandler{
		dashboardService: dashboardService,
		db:               db,
		version:          version,
	}
}

// GET /health
func (h *HomeHandler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if err := h.ping(c); err != nil {
		_ = c.Error(err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"version":  h.version,
		"language": utils.GetLangFromContext(c),
	})
}

// GET /dashboard
func (h *HomeHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), recentItems)
	if err != nil {
		respondError(c, err, i18n.KeyBookNotFound)
		return
	}
	utils.SuccessResponse(c, stats)
}

func (h *HomeHandler) ping(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
