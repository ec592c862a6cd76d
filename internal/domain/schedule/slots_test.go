package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

func slotStarts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

// Terça-feira 2026-03-17; relógio a 2026-03-10 meio-dia, logo a
// antecedência mínima de 24h nunca interfere.
func baseSlotInput() SlotInput {
	return SlotInput{
		Date: time.Date(2026, 3, 17, 0, 0, 0, 0, time.Local),
		Day: models.BusinessHour{
			DayOfWeek: 2,
			IsOpen:    true,
			OpenTime:  "09:00",
			CloseTime: "12:00",
		},
		Settings: models.BookingSetting{
			SlotDuration:       60,
			BufferTime:         0,
			AdvanceBookingDays: 30,
			MinAdvanceHours:    24,
		},
		Now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local),
	}
}

func TestAvailableSlotsBasicGrid(t *testing.T) {
	slots := AvailableSlots(baseSlotInput())

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(slots))
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:00", slots[0].End)
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	in := baseSlotInput()
	in.Day.IsOpen = false

	assert.Nil(t, AvailableSlots(in))
}

func TestAvailableSlotsSpecialDayClosed(t *testing.T) {
	in := baseSlotInput()
	in.SpecialDay = &models.SpecialDay{
		Date:     "2026-03-17",
		IsClosed: true,
		Reason:   "Feriado",
	}

	assert.Nil(t, AvailableSlots(in))
}

func TestAvailableSlotsSpecialDayOpenOverride(t *testing.T) {
	in := baseSlotInput()
	in.SpecialDay = &models.SpecialDay{
		Date:     "2026-03-17",
		IsClosed: false,
		Reason:   "Abertura extraordinária",
	}

	assert.NotEmpty(t, AvailableSlots(in))
}

func TestAvailableSlotsSkipsBreak(t *testing.T) {
	in := baseSlotInput()
	in.Day.CloseTime = "13:00"
	in.Day.BreakStart = strptr("10:00")
	in.Day.BreakEnd = strptr("11:00")

	slots := AvailableSlots(in)

	assert.Equal(t, []string{"09:00", "11:00", "12:00"}, slotStarts(slots))
}

func TestAvailableSlotsPastDate(t *testing.T) {
	in := baseSlotInput()
	in.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

	assert.Nil(t, AvailableSlots(in))
}

func TestAvailableSlotsBeyondAdvanceWindow(t *testing.T) {
	in := baseSlotInput()
	in.Settings.AdvanceBookingDays = 5

	assert.Nil(t, AvailableSlots(in))
}

func TestAvailableSlotsMinAdvanceHours(t *testing.T) {
	in := baseSlotInput()
	// Relógio na véspera às 11:00 com 24h mínimas: só sobra 11:00 do dia seguinte
	in.Now = time.Date(2026, 3, 16, 11, 0, 0, 0, time.Local)

	slots := AvailableSlots(in)

	assert.Equal(t, []string{"11:00"}, slotStarts(slots))
}

func TestAvailableSlotsDailyCap(t *testing.T) {
	in := baseSlotInput()
	limit := 2
	in.Settings.MaxBookingsPerDay = &limit
	in.Existing = []models.Appointment{
		{AppointmentDate: time.Date(2026, 3, 17, 9, 0, 0, 0, time.Local)},
		{AppointmentDate: time.Date(2026, 3, 17, 10, 0, 0, 0, time.Local)},
	}

	assert.Nil(t, AvailableSlots(in))
}

func TestAvailableSlotsExistingConflict(t *testing.T) {
	in := baseSlotInput()
	in.Existing = []models.Appointment{
		{AppointmentDate: time.Date(2026, 3, 17, 10, 0, 0, 0, time.Local)},
	}

	slots := AvailableSlots(in)

	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(slots))
}

func TestAvailableSlotsBufferExpandsConflicts(t *testing.T) {
	in := baseSlotInput()
	in.Settings.BufferTime = 15
	in.Existing = []models.Appointment{
		{AppointmentDate: time.Date(2026, 3, 17, 10, 0, 0, 0, time.Local)},
	}

	slots := AvailableSlots(in)

	// O buffer de 15min invade os slots vizinhos dos dois lados
	assert.Empty(t, slotStarts(slots))
}

func TestAvailableSlotsLastSlotFitsExactly(t *testing.T) {
	in := baseSlotInput()
	in.Day.CloseTime = "11:30"
	in.Settings.SlotDuration = 30

	slots := AvailableSlots(in)

	// 11:00–11:30 cabe; 11:30–12:00 já não
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slotStarts(slots))
}
