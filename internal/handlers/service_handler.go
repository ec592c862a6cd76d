package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/httperr"
	"github.com/ZapAtende01/whatsapp-crm/internal/httpresp"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

type ServiceRequest struct {
	ServiceName string `json:"service_name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ?", tenantID).
		Order("service_name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao carregar serviços")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		TenantID:    tenantID,
		ServiceName: req.ServiceName,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço")
		return
	}

	h.dispatch(c, "service_created", service.ID)

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	id := c.Param("id")

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var service models.Service
	if err := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
		return
	}

	service.ServiceName = req.ServiceName
	service.Description = req.Description
	service.Price = req.Price
	service.Duration = req.Duration

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço")
		return
	}

	h.dispatch(c, "service_updated", service.ID)

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	id := c.Param("id")

	result := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Service{})

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
		return
	}

	h.dispatch(c, "service_deleted", id)

	httpresp.OK(c, gin.H{"status": "deleted"})
}

func (h *ServiceHandler) dispatch(c *gin.Context, action, entityID string) {
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	h.audit.Dispatch(audit.Event{
		TenantID:  c.MustGet(middleware.ContextTenantID).(string),
		ProfileID: &profileID,
		Action:    action,
		Entity:    "service",
		EntityID:  entityID,
	})
}
