package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
	"github.com/ZapAtende01/whatsapp-crm/internal/metrics"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	usecase "github.com/ZapAtende01/whatsapp-crm/internal/usecase/schedule"
)

// ScheduleHandler expõe o editor de horários: carregar o aggregate,
// aplicar as edições recebidas e gravar em grupos independentes.
type ScheduleHandler struct {
	load         *usecase.LoadSchedule
	save         *usecase.SaveSchedule
	availability *usecase.GetAvailability
}

func NewScheduleHandler(
	load *usecase.LoadSchedule,
	save *usecase.SaveSchedule,
	availability *usecase.GetAvailability,
) *ScheduleHandler {
	return &ScheduleHandler{
		load:         load,
		save:         save,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleDayRequest struct {
	DayOfWeek int  `json:"day_of_week" binding:"min=0,max=6"`
	IsOpen    bool `json:"is_open"`

	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`

	// Vazios = dia sem pausa.
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ScheduleSettingsRequest struct {
	SlotDuration       int `json:"slot_duration"`
	BufferTime         int `json:"buffer_time"`
	AdvanceBookingDays int `json:"advance_booking_days"`
	MinAdvanceHours    int `json:"min_advance_hours"`

	MaxBookingsPerDay     *int `json:"max_bookings_per_day"`
	AllowMultipleBookings bool `json:"allow_multiple_bookings"`
}

type ScheduleSpecialDayRequest struct {
	// ID 0 = linha nova (ainda sem registo na base de dados).
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	IsClosed *bool  `json:"is_closed"`
	Reason   string `json:"reason"`
}

type ScheduleUpdateRequest struct {
	Days        []ScheduleDayRequest        `json:"days" binding:"required,len=7"`
	Settings    ScheduleSettingsRequest     `json:"settings" binding:"required"`
	SpecialDays []ScheduleSpecialDayRequest `json:"special_days"`
}

// ======================================================
// GET /me/schedule
// ======================================================

func (h *ScheduleHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	agg, err := h.load.Execute(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_load_schedule",
			"message": "Erro ao carregar horários",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":         agg.Days,
		"settings":     agg.Settings,
		"special_days": agg.SpecialDays,
	})
}

// ======================================================
// PUT /me/schedule
// ======================================================

func (h *ScheduleHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	profileID := c.MustGet(middleware.ContextProfileID).(string)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	agg, err := h.load.Execute(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_load_schedule",
			"message": "Erro ao carregar horários",
		})
		return
	}

	ed := domain.NewEditor(agg)
	if err := applyScheduleRequest(ed, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.save.Execute(c.Request.Context(), profileID, ed.Aggregate())

	if len(result.Violations) > 0 {
		metrics.IncScheduleSave("validation_failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "validation_failed",
			"violations": result.Violations,
		})
		return
	}

	if len(result.Failed) > 0 {
		metrics.IncScheduleSave("partial_failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         "partial_save_failure",
			"message":       "Erro ao guardar parte das alterações",
			"failed_groups": result.FailedGroups(),
		})
		return
	}

	metrics.IncScheduleSave("success")

	// Devolve o estado persistido, com os IDs reais das linhas novas.
	saved, err := h.load.Execute(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Horários guardados com sucesso!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Horários guardados com sucesso!",
		"days":         saved.Days,
		"settings":     saved.Settings,
		"special_days": saved.SpecialDays,
	})
}

// applyScheduleRequest replica as edições do cliente sobre o aggregate
// carregado, usando as mesmas operações do editor interativo.
func applyScheduleRequest(ed *domain.Editor, req *ScheduleUpdateRequest) error {
	agg := ed.Aggregate()

	for _, d := range req.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			continue
		}

		if agg.Days[d.DayOfWeek].IsOpen != d.IsOpen {
			ed.ToggleDayOpen(d.DayOfWeek)
		}

		if err := ed.SetDayField(d.DayOfWeek, "open_time", d.OpenTime); err != nil {
			return err
		}
		if err := ed.SetDayField(d.DayOfWeek, "close_time", d.CloseTime); err != nil {
			return err
		}

		if d.BreakStart == "" && d.BreakEnd == "" {
			ed.ClearBreak(d.DayOfWeek)
		} else {
			if err := ed.SetDayField(d.DayOfWeek, "break_start", d.BreakStart); err != nil {
				return err
			}
			if err := ed.SetDayField(d.DayOfWeek, "break_end", d.BreakEnd); err != nil {
				return err
			}
		}
	}

	settings := map[string]any{
		"slot_duration":           req.Settings.SlotDuration,
		"buffer_time":             req.Settings.BufferTime,
		"advance_booking_days":    req.Settings.AdvanceBookingDays,
		"min_advance_hours":       req.Settings.MinAdvanceHours,
		"max_bookings_per_day":    req.Settings.MaxBookingsPerDay,
		"allow_multiple_bookings": req.Settings.AllowMultipleBookings,
	}
	for field, value := range settings {
		if err := ed.SetSetting(field, value); err != nil {
			return err
		}
	}

	// Linhas persistidas ausentes do pedido foram removidas no cliente.
	wanted := make(map[uint]bool, len(req.SpecialDays))
	for _, sd := range req.SpecialDays {
		if sd.ID != 0 {
			wanted[sd.ID] = true
		}
	}
	for _, sd := range agg.SpecialDays {
		if !sd.IsNew && !wanted[sd.ID] {
			ed.RemoveSpecialDay(strconv.FormatUint(uint64(sd.ID), 10))
		}
	}

	for _, sd := range req.SpecialDays {
		id := strconv.FormatUint(uint64(sd.ID), 10)
		if sd.ID == 0 {
			id = ed.AddSpecialDay()
		}

		if err := ed.SetSpecialDayField(id, "date", sd.Date); err != nil {
			return err
		}
		if err := ed.SetSpecialDayField(id, "reason", sd.Reason); err != nil {
			return err
		}
		if sd.IsClosed != nil {
			if err := ed.SetSpecialDayField(id, "is_closed", *sd.IsClosed); err != nil {
				return err
			}
		}
	}

	return nil
}

// ======================================================
// GET /me/schedule/availability?date=2006-01-02
// ======================================================

func (h *ScheduleHandler) Availability(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), tenantID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
