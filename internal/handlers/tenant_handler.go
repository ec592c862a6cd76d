package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type TenantHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTenantHandler(db *gorm.DB, audit *audit.Dispatcher) *TenantHandler {
	return &TenantHandler{db: db, audit: audit}
}

func (h *TenantHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	var tenant models.Tenant
	if err := h.db.First(&tenant, "id = ?", tenantID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant_not_found"})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

type TenantUpdateRequest struct {
	BusinessName  string `json:"business_name"`
	BusinessPhone string `json:"business_phone"`
	Address       string `json:"address"`
	WorkingHours  string `json:"working_hours"`
}

func (h *TenantHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	var req TenantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, "id = ?", tenantID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant_not_found"})
		return
	}

	tenant.BusinessName = req.BusinessName
	tenant.BusinessPhone = req.BusinessPhone
	tenant.Address = req.Address
	tenant.WorkingHours = req.WorkingHours

	if err := h.db.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_tenant"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID:  tenantID,
		ProfileID: &profileID,
		Action:    "tenant_updated",
		Entity:    "tenant",
		EntityID:  tenant.ID,
	})

	c.JSON(http.StatusOK, tenant)
}
