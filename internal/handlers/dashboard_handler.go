package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/cache"
	"github.com/ZapAtende01/whatsapp-crm/internal/dto"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

const dashboardCacheTTL = 60 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, cache *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cache}
}

// Metrics calcula os agregados do painel a partir de message_history
// e services. Resultado cacheado por tenant durante 60s.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	cacheKey := fmt.Sprintf("dashboard:metrics:%s", tenantID)

	var metrics dto.DashboardMetricsDTO
	if h.cache.Get(c.Request.Context(), cacheKey, &metrics) {
		c.JSON(http.StatusOK, metrics)
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	base := h.db.Model(&models.Message{}).Where("tenant_id = ?", tenantID)

	if err := base.Session(&gorm.Session{}).
		Count(&metrics.TotalMessages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", today).
		Count(&metrics.MessagesToday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", weekStart).
		Count(&metrics.MessagesThisWeek).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", monthStart).
		Count(&metrics.MessagesThisMonth).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	if err := base.Session(&gorm.Session{}).
		Distinct("phone_number").
		Count(&metrics.UniqueCustomers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	var answered int64
	if err := base.Session(&gorm.Session{}).
		Where("bot_response <> ''").
		Count(&answered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}
	if metrics.TotalMessages > 0 {
		metrics.ResponseRate = float64(answered) / float64(metrics.TotalMessages) * 100
	}

	if err := h.db.Model(&models.Service{}).
		Where("tenant_id = ?", tenantID).
		Count(&metrics.TotalServices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_metrics"})
		return
	}

	h.cache.Set(c.Request.Context(), cacheKey, metrics, dashboardCacheTTL)

	c.JSON(http.StatusOK, metrics)
}
