package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

var testToday = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func validAggregate() *Aggregate {
	return &Aggregate{
		TenantID: "tenant-1",
		Days:     DefaultWeek("tenant-1"),
		Settings: DefaultSettings("tenant-1"),
	}
}

func codes(violations []FieldViolation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

func TestValidateDefaultsAreClean(t *testing.T) {
	assert.Empty(t, Validate(validAggregate(), testToday))
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingSetting)
		code   string
	}{
		{
			name:   "slot abaixo do mínimo",
			mutate: func(s *models.BookingSetting) { s.SlotDuration = 10 },
			code:   "min_slot_duration",
		},
		{
			name:   "slot fora do passo de 15",
			mutate: func(s *models.BookingSetting) { s.SlotDuration = 40 },
			code:   "slot_duration_step",
		},
		{
			name:   "buffer negativo",
			mutate: func(s *models.BookingSetting) { s.BufferTime = -5 },
			code:   "negative_buffer",
		},
		{
			name:   "janela de antecedência nula",
			mutate: func(s *models.BookingSetting) { s.AdvanceBookingDays = 0 },
			code:   "min_advance_days",
		},
		{
			name:   "antecedência mínima negativa",
			mutate: func(s *models.BookingSetting) { s.MinAdvanceHours = -1 },
			code:   "negative_min_advance",
		},
		{
			name: "limite diário inválido",
			mutate: func(s *models.BookingSetting) {
				zero := 0
				s.MaxBookingsPerDay = &zero
			},
			code: "invalid_daily_limit",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg := validAggregate()
			tc.mutate(&agg.Settings)

			violations := Validate(agg, testToday)
			assert.Contains(t, codes(violations), tc.code)
		})
	}
}

func TestValidateSlotDurationMultipleOf15Passes(t *testing.T) {
	for _, dur := range []int{15, 30, 45, 60, 90} {
		agg := validAggregate()
		agg.Settings.SlotDuration = dur
		assert.Empty(t, Validate(agg, testToday), "duração %d", dur)
	}
}

func TestValidateDay(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BusinessHour)
		code   string
		field  string
	}{
		{
			name:   "abertura inválida",
			mutate: func(d *models.BusinessHour) { d.OpenTime = "9h00" },
			code:   "invalid_time",
			field:  "days[1].open_time",
		},
		{
			name: "fecho antes da abertura",
			mutate: func(d *models.BusinessHour) {
				d.OpenTime = "18:00"
				d.CloseTime = "09:00"
			},
			code:  "close_before_open",
			field: "days[1].close_time",
		},
		{
			name:   "pausa sem fim",
			mutate: func(d *models.BusinessHour) { d.BreakEnd = nil },
			code:   "incomplete_break",
			field:  "days[1].break_start",
		},
		{
			name: "fim da pausa antes do início",
			mutate: func(d *models.BusinessHour) {
				d.BreakStart = strptr("15:00")
				d.BreakEnd = strptr("14:00")
			},
			code:  "break_end_before_start",
			field: "days[1].break_end",
		},
		{
			name: "pausa fora do expediente",
			mutate: func(d *models.BusinessHour) {
				d.BreakStart = strptr("08:00")
				d.BreakEnd = strptr("08:30")
			},
			code:  "break_outside_hours",
			field: "days[1].break_start",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg := validAggregate()
			tc.mutate(&agg.Days[1])

			violations := Validate(agg, testToday)
			require.NotEmpty(t, violations)

			found := false
			for _, v := range violations {
				if v.Code == tc.code && v.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "esperava %s em %s, obtive %v", tc.code, tc.field, violations)
		})
	}
}

func TestValidateSkipsClosedDays(t *testing.T) {
	agg := validAggregate()

	// Dia fechado com lixo persistido: tolerado
	agg.Days[0].IsOpen = false
	agg.Days[0].OpenTime = "nonsense"
	agg.Days[0].CloseTime = ""

	assert.Empty(t, Validate(agg, testToday))
}

func TestValidateSpecialDays(t *testing.T) {
	agg := validAggregate()
	agg.SpecialDays = []SpecialDayEdit{
		{SpecialDay: models.SpecialDay{ID: 1, Date: ""}},
		{SpecialDay: models.SpecialDay{ID: 2, Date: "25/12/2026"}},
		{SpecialDay: models.SpecialDay{ID: 3, Date: "2020-01-01"}},
		{SpecialDay: models.SpecialDay{ID: 4, Date: "2026-03-10"}}, // hoje é válido
	}

	violations := Validate(agg, testToday)

	assert.ElementsMatch(t,
		[]string{"missing_date", "invalid_date", "date_in_past"},
		codes(violations),
	)
}

func TestValidateIgnoresDeletedAndBlankNewSpecialDays(t *testing.T) {
	agg := validAggregate()
	agg.SpecialDays = []SpecialDayEdit{
		// Linha persistida marcada para remoção: mesmo no passado, não bloqueia
		{SpecialDay: models.SpecialDay{ID: 1, Date: "2020-01-01"}, Deleted: true},
		// Linha nova ainda sem data: não bloqueia
		{IsNew: true, TempID: "temp-x"},
	}

	assert.Empty(t, Validate(agg, testToday))
}
