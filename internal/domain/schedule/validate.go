package schedule

import (
	"fmt"
	"time"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ===============================
// Validações pré-save
// ===============================

// FieldViolation é um erro de validação ligado a um campo concreto.
// Nunca é fatal: bloqueia apenas o save, o resto do formulário continua
// editável.
type FieldViolation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const slotDurationStep = 15

var dayNames = [7]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

// Validate verifica a consistência interna do aggregate antes de
// qualquer escrita. Dias fechados não são validados: campos de hora
// antigos podem ficar persistidos (estado legado tolerado).
func Validate(agg *Aggregate, today time.Time) []FieldViolation {
	var out []FieldViolation

	out = append(out, validateSettings(&agg.Settings)...)

	for i := range agg.Days {
		out = append(out, validateDay(i, &agg.Days[i])...)
	}

	todayStr := today.Format("2006-01-02")
	for i := range agg.SpecialDays {
		sd := &agg.SpecialDays[i]
		if sd.Deleted || (sd.IsNew && sd.Date == "") {
			continue
		}
		out = append(out, validateSpecialDay(i, sd, todayStr)...)
	}

	return out
}

func validateSettings(s *models.BookingSetting) []FieldViolation {
	var out []FieldViolation

	if s.SlotDuration < slotDurationStep {
		out = append(out, FieldViolation{
			Field:   "slot_duration",
			Code:    "min_slot_duration",
			Message: "Duração mínima é de 15 minutos.",
		})
	} else if s.SlotDuration%slotDurationStep != 0 {
		out = append(out, FieldViolation{
			Field:   "slot_duration",
			Code:    "slot_duration_step",
			Message: "Duração deve ser múltipla de 15 minutos.",
		})
	}

	if s.BufferTime < 0 {
		out = append(out, FieldViolation{
			Field:   "buffer_time",
			Code:    "negative_buffer",
			Message: "Tempo entre marcações não pode ser negativo.",
		})
	}

	if s.AdvanceBookingDays < 1 {
		out = append(out, FieldViolation{
			Field:   "advance_booking_days",
			Code:    "min_advance_days",
			Message: "Antecedência máxima deve ser de pelo menos 1 dia.",
		})
	}

	if s.MinAdvanceHours < 0 {
		out = append(out, FieldViolation{
			Field:   "min_advance_hours",
			Code:    "negative_min_advance",
			Message: "Antecedência mínima não pode ser negativa.",
		})
	}

	if s.MaxBookingsPerDay != nil && *s.MaxBookingsPerDay < 1 {
		out = append(out, FieldViolation{
			Field:   "max_bookings_per_day",
			Code:    "invalid_daily_limit",
			Message: "Máximo de marcações por dia deve ser positivo ou vazio.",
		})
	}

	return out
}

func validateDay(idx int, day *models.BusinessHour) []FieldViolation {
	if !day.IsOpen {
		return nil
	}

	field := func(name string) string {
		return fmt.Sprintf("days[%d].%s", idx, name)
	}

	var out []FieldViolation

	open, okOpen := parseHM(day.OpenTime)
	if !okOpen {
		out = append(out, FieldViolation{
			Field:   field("open_time"),
			Code:    "invalid_time",
			Message: dayNames[idx] + ": hora de abertura inválida.",
		})
	}

	closeT, okClose := parseHM(day.CloseTime)
	if !okClose {
		out = append(out, FieldViolation{
			Field:   field("close_time"),
			Code:    "invalid_time",
			Message: dayNames[idx] + ": hora de fecho inválida.",
		})
	}

	if okOpen && okClose && open >= closeT {
		out = append(out, FieldViolation{
			Field:   field("close_time"),
			Code:    "close_before_open",
			Message: dayNames[idx] + ": fecho deve ser depois da abertura.",
		})
	}

	hasStart := day.BreakStart != nil && *day.BreakStart != ""
	hasEnd := day.BreakEnd != nil && *day.BreakEnd != ""

	if hasStart != hasEnd {
		out = append(out, FieldViolation{
			Field:   field("break_start"),
			Code:    "incomplete_break",
			Message: dayNames[idx] + ": a pausa precisa de início e fim.",
		})
		return out
	}

	if !hasStart {
		return out
	}

	bStart, okBS := parseHM(*day.BreakStart)
	bEnd, okBE := parseHM(*day.BreakEnd)

	if !okBS || !okBE {
		out = append(out, FieldViolation{
			Field:   field("break_start"),
			Code:    "invalid_time",
			Message: dayNames[idx] + ": horário de pausa inválido.",
		})
		return out
	}

	if bStart >= bEnd {
		out = append(out, FieldViolation{
			Field:   field("break_end"),
			Code:    "break_end_before_start",
			Message: dayNames[idx] + ": fim da pausa deve ser depois do início.",
		})
	}

	if okOpen && okClose && (bStart < open || bEnd > closeT) {
		out = append(out, FieldViolation{
			Field:   field("break_start"),
			Code:    "break_outside_hours",
			Message: dayNames[idx] + ": pausa deve estar dentro do expediente.",
		})
	}

	return out
}

func validateSpecialDay(idx int, sd *SpecialDayEdit, today string) []FieldViolation {
	field := fmt.Sprintf("special_days[%d].date", idx)

	if sd.Date == "" {
		return []FieldViolation{{
			Field:   field,
			Code:    "missing_date",
			Message: "Dia especial precisa de uma data.",
		}}
	}

	if _, err := time.Parse("2006-01-02", sd.Date); err != nil {
		return []FieldViolation{{
			Field:   field,
			Code:    "invalid_date",
			Message: "Data inválida.",
		}}
	}

	// Comparação lexicográfica funciona para "2006-01-02".
	if sd.Date < today {
		return []FieldViolation{{
			Field:   field,
			Code:    "date_in_past",
			Message: "Dia especial não pode estar no passado.",
		}}
	}

	return nil
}

// parseHM converte "HH:MM" em minutos desde a meia-noite.
func parseHM(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
