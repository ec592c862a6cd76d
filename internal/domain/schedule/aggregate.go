package schedule

import (
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ===============================
// Aggregate (view model do editor)
// ===============================

// Aggregate é a visão completa do horário de um tenant: sempre 7 dias
// (índice = day_of_week, 0 = Domingo), as regras de agendamento e os
// dias especiais futuros em edição.
type Aggregate struct {
	TenantID    string                `json:"tenant_id"`
	Days        [7]models.BusinessHour `json:"days"`
	Settings    models.BookingSetting  `json:"settings"`
	SpecialDays []SpecialDayEdit       `json:"special_days"`
}

// ===============================
// Defaults
// ===============================

// DefaultWeek devolve o padrão usado quando o tenant ainda não gravou
// nenhuma linha: Seg–Sex 09:00–18:00 com pausa 13:00–14:00, Sáb
// 09:00–13:00 sem pausa, Dom fechado. Vive só em memória até ao save.
func DefaultWeek(tenantID string) [7]models.BusinessHour {
	var days [7]models.BusinessHour
	for d := 0; d < 7; d++ {
		days[d] = defaultDay(tenantID, d)
	}
	return days
}

func defaultDay(tenantID string, dayOfWeek int) models.BusinessHour {
	h := models.BusinessHour{
		TenantID:  tenantID,
		DayOfWeek: dayOfWeek,
	}

	switch {
	case dayOfWeek >= 1 && dayOfWeek <= 5:
		h.IsOpen = true
		h.OpenTime = "09:00"
		h.CloseTime = "18:00"
		h.BreakStart = strptr("13:00")
		h.BreakEnd = strptr("14:00")

	case dayOfWeek == 6:
		h.IsOpen = true
		h.OpenTime = "09:00"
		h.CloseTime = "13:00"
	}

	return h
}

// WeekFromRows monta os 7 dias a partir das linhas persistidas,
// preenchendo com o padrão os dias sem linha.
func WeekFromRows(tenantID string, rows []models.BusinessHour) [7]models.BusinessHour {
	if len(rows) == 0 {
		return DefaultWeek(tenantID)
	}

	var days [7]models.BusinessHour
	seen := [7]bool{}

	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			continue
		}
		days[row.DayOfWeek] = row
		seen[row.DayOfWeek] = true
	}

	for d := 0; d < 7; d++ {
		if !seen[d] {
			days[d] = defaultDay(tenantID, d)
		}
	}

	return days
}

// DefaultSettings são as regras aplicadas antes do primeiro save.
func DefaultSettings(tenantID string) models.BookingSetting {
	return models.BookingSetting{
		TenantID:              tenantID,
		SlotDuration:          30,
		BufferTime:            0,
		AdvanceBookingDays:    30,
		MinAdvanceHours:       24,
		MaxBookingsPerDay:     nil,
		AllowMultipleBookings: false,
	}
}

func strptr(s string) *string {
	return &s
}
