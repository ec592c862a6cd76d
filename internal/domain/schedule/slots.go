package schedule

import (
	"time"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ===============================
// Geração de slots
// ===============================

// SlotInput reúne tudo o que a geração de slots precisa. Função pura:
// nenhuma leitura de relógio ou de base de dados acontece aqui dentro.
type SlotInput struct {
	// Date é o dia pedido (só ano/mês/dia são considerados).
	Date time.Time

	Day      models.BusinessHour
	Settings models.BookingSetting

	// Existing são as marcações do dia, ordenadas por hora.
	Existing []models.Appointment

	// SpecialDay é a sobreposição para Date, nil quando não existe.
	SpecialDay *models.SpecialDay

	Now time.Time
}

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailableSlots calcula os inícios de marcação possíveis para um dia,
// aplicando expediente, pausa, dias especiais, antecedências, limite
// diário e tempo entre marcações.
func AvailableSlots(in SlotInput) []Slot {
	day := in.Day
	if !day.IsOpen || day.OpenTime == "" || day.CloseTime == "" {
		return nil
	}

	if in.SpecialDay != nil && in.SpecialDay.IsClosed {
		return nil
	}

	today := midnight(in.Now)
	date := midnight(in.Date)

	if date.Before(today) {
		return nil
	}
	if date.After(today.AddDate(0, 0, in.Settings.AdvanceBookingDays)) {
		return nil
	}

	if in.Settings.MaxBookingsPerDay != nil && len(in.Existing) >= *in.Settings.MaxBookingsPerDay {
		return nil
	}

	dayStart, ok := atTime(date, day.OpenTime)
	if !ok {
		return nil
	}
	dayEnd, ok := atTime(date, day.CloseTime)
	if !ok {
		return nil
	}

	hasBreak := day.BreakStart != nil && day.BreakEnd != nil &&
		*day.BreakStart != "" && *day.BreakEnd != ""
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart, ok = atTime(date, *day.BreakStart)
		if !ok {
			hasBreak = false
		}
	}
	if hasBreak {
		breakEnd, ok = atTime(date, *day.BreakEnd)
		if !ok {
			hasBreak = false
		}
	}

	slotDur := time.Duration(in.Settings.SlotDuration) * time.Minute
	if slotDur <= 0 {
		return nil
	}
	buffer := time.Duration(in.Settings.BufferTime) * time.Minute

	minStart := in.Now.Add(time.Duration(in.Settings.MinAdvanceHours) * time.Hour)

	var slots []Slot

	for cur := dayStart; !cur.Add(slotDur).After(dayEnd); cur = cur.Add(slotDur) {
		slotStart := cur
		slotEnd := cur.Add(slotDur)

		if slotStart.Before(minStart) {
			continue
		}

		if hasBreak && slotStart.Before(breakEnd) && slotEnd.After(breakStart) {
			continue
		}

		if conflicts(slotStart, slotEnd, slotDur, buffer, in.Existing) {
			continue
		}

		slots = append(slots, Slot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots
}

// conflicts verifica sobreposição com marcações existentes, alargadas
// pelo buffer dos dois lados.
func conflicts(
	slotStart, slotEnd time.Time,
	slotDur, buffer time.Duration,
	existing []models.Appointment,
) bool {

	for _, ap := range existing {
		apStart := ap.AppointmentDate.Add(-buffer)
		apEnd := ap.AppointmentDate.Add(slotDur + buffer)

		if slotStart.Before(apEnd) && slotEnd.After(apStart) {
			return true
		}
	}

	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atTime(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}
