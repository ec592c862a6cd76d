package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/httperr"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
	usecase "github.com/ZapAtende01/whatsapp-crm/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db     *gorm.DB
	create *usecase.CreateAppointment
	audit  *audit.Dispatcher
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	audit *audit.Dispatcher,
) *AppointmentHandler {
	return &AppointmentHandler{db: db, create: create, audit: audit}
}

// ======================================================
// LIST APPOINTMENTS
// ======================================================

// List devolve os agendamentos do tenant num intervalo de datas,
// por omissão os próximos 7 dias.
func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 7)

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_from_date"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_to_date"})
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Service").
		Where("tenant_id = ? AND appointment_date >= ? AND appointment_date < ?",
			tenantID, from, to).
		Order("appointment_date ASC").
		Find(&appointments).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// ======================================================
// CREATE APPOINTMENT
// ======================================================

type AppointmentCreateRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // "2006-01-02"
	Time       string `json:"time" binding:"required"` // "15:04"
	Notes      string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	var req AppointmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		TenantID:   tenantID,
		ProfileID:  profileID,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) writeCreateError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_appointment"})
		return
	}

	switch code {
	case "invalid_date_or_time":
		c.JSON(http.StatusBadRequest, gin.H{"error": code})
	case "service_not_found":
		c.JSON(http.StatusNotFound, gin.H{"error": code})
	case "time_conflict", "day_fully_booked", "customer_already_booked":
		c.JSON(http.StatusConflict, gin.H{"error": code})
	default:
		// too_soon, too_far_ahead, closed_on_date, outside_business_hours
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": code})
	}
}

// ======================================================
// UPDATE APPOINTMENT (só notas; remarcar = cancelar + criar)
// ======================================================

type AppointmentUpdateRequest struct {
	Notes string `json:"notes"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	profileID := c.MustGet(middleware.ContextProfileID).(string)
	id := c.Param("id")

	var req AppointmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&ap).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "appointment_not_found"})
		return
	}

	ap.Notes = req.Notes
	if err := h.db.Save(&ap).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_appointment"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID:  tenantID,
		ProfileID: &profileID,
		Action:    "appointment_updated",
		Entity:    "appointment",
		EntityID:  ap.ID,
	})

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE APPOINTMENT
// ======================================================
func (h *AppointmentHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	profileID := c.MustGet(middleware.ContextProfileID).(string)
	id := c.Param("id")

	result := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Appointment{})

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_appointment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment_not_found"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID:  tenantID,
		ProfileID: &profileID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
