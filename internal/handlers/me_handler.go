package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	profileIDVal, exists := c.Get(middleware.ContextProfileID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile_not_in_context"})
		return
	}

	profileID, ok := profileIDVal.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_profile_id_type"})
		return
	}

	var profile models.Profile
	if err := h.db.Preload("Tenant").First(&profile, "id = ?", profileID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":        profile.ID,
			"name":      profile.Name,
			"email":     profile.Email,
			"phone":     profile.Phone,
			"role":      profile.Role,
			"tenant_id": profile.TenantID,
		},
		"tenant": gin.H{
			"id":             profile.Tenant.ID,
			"business_name":  profile.Tenant.BusinessName,
			"business_phone": profile.Tenant.BusinessPhone,
			"address":        profile.Tenant.Address,
			"working_hours":  profile.Tenant.WorkingHours,
		},
	})
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}

	if len(updates) > 0 {
		if err := h.db.Model(&models.Profile{}).
			Where("id = ?", profileID).
			Updates(updates).Error; err != nil {

			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
