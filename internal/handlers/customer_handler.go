package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type CustomerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCustomerHandler(db *gorm.DB, audit *audit.Dispatcher) *CustomerHandler {
	return &CustomerHandler{db: db, audit: audit}
}

// ======================================================
// LIST CUSTOMERS
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("tenant_id = ?", tenantID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone_number LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// ======================================================
// GET CUSTOMER
// ======================================================
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// CREATE CUSTOMER
// ======================================================

type CustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	customer := models.Customer{
		TenantID:    tenantID,
		Name:        req.Name,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:       req.Notes,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_customer"})
		return
	}

	h.dispatch(c, "customer_created", customer.ID)

	c.JSON(http.StatusCreated, customer)
}

// ======================================================
// UPDATE CUSTOMER
// ======================================================
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	id := c.Param("id")

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
		return
	}

	customer.Name = req.Name
	customer.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	customer.Notes = req.Notes

	if err := h.db.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_customer"})
		return
	}

	h.dispatch(c, "customer_updated", customer.ID)

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// DELETE CUSTOMER
// ======================================================
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	id := c.Param("id")

	result := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Customer{})

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_customer"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
		return
	}

	h.dispatch(c, "customer_deleted", id)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *CustomerHandler) dispatch(c *gin.Context, action, entityID string) {
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	h.audit.Dispatch(audit.Event{
		TenantID:  c.MustGet(middleware.ContextTenantID).(string),
		ProfileID: &profileID,
		Action:    action,
		Entity:    "customer",
		EntityID:  entityID,
	})
}
