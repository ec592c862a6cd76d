package schedule

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/ZapAtende01/whatsapp-crm/internal/httperr"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ===============================
// Special day em edição
// ===============================

// SpecialDayEdit embrulha uma linha de special_days durante a edição.
// Linhas novas só têm TempID até serem gravadas; linhas persistidas
// removidas ficam marcadas Deleted para gerar um DELETE no save.
type SpecialDayEdit struct {
	models.SpecialDay

	TempID  string `json:"temp_id,omitempty"`
	IsNew   bool   `json:"-"`
	Deleted bool   `json:"-"`
}

// EditID identifica a linha dentro do editor: TempID para linhas novas,
// o ID persistido para as restantes.
func (s SpecialDayEdit) EditID() string {
	if s.IsNew {
		return s.TempID
	}
	return strconv.FormatUint(uint64(s.ID), 10)
}

// ===============================
// Editor
// ===============================

// Editor media as edições do utilizador sobre o aggregate em memória.
// Nada toca a base de dados até o save explícito.
type Editor struct {
	agg *Aggregate
}

func NewEditor(agg *Aggregate) *Editor {
	return &Editor{agg: agg}
}

func (e *Editor) Aggregate() *Aggregate {
	return e.agg
}

func (e *Editor) ToggleDayOpen(dayIndex int) {
	if dayIndex < 0 || dayIndex > 6 {
		return
	}
	e.agg.Days[dayIndex].IsOpen = !e.agg.Days[dayIndex].IsOpen
}

func (e *Editor) SetDayField(dayIndex int, field, value string) error {
	if dayIndex < 0 || dayIndex > 6 {
		return httperr.ErrBusiness("invalid_day_index")
	}

	day := &e.agg.Days[dayIndex]

	switch field {
	case "open_time":
		day.OpenTime = value
	case "close_time":
		day.CloseTime = value
	case "break_start":
		day.BreakStart = optionalTime(value)
	case "break_end":
		day.BreakEnd = optionalTime(value)
	default:
		return httperr.ErrBusiness("unknown_day_field")
	}

	return nil
}

// ClearBreak anula os dois campos de pausa; sem efeito quando já ausentes.
func (e *Editor) ClearBreak(dayIndex int) {
	if dayIndex < 0 || dayIndex > 6 {
		return
	}
	e.agg.Days[dayIndex].BreakStart = nil
	e.agg.Days[dayIndex].BreakEnd = nil
}

func (e *Editor) SetSetting(field string, value any) error {
	s := &e.agg.Settings

	switch field {
	case "slot_duration":
		n, err := asInt(value)
		if err != nil {
			return err
		}
		s.SlotDuration = n

	case "buffer_time":
		n, err := asInt(value)
		if err != nil {
			return err
		}
		s.BufferTime = n

	case "advance_booking_days":
		n, err := asInt(value)
		if err != nil {
			return err
		}
		s.AdvanceBookingDays = n

	case "min_advance_hours":
		n, err := asInt(value)
		if err != nil {
			return err
		}
		s.MinAdvanceHours = n

	case "max_bookings_per_day":
		n, err := asOptionalInt(value)
		if err != nil {
			return err
		}
		s.MaxBookingsPerDay = n

	case "allow_multiple_bookings":
		b, ok := value.(bool)
		if !ok {
			return httperr.ErrBusiness("invalid_setting_value")
		}
		s.AllowMultipleBookings = b

	default:
		return httperr.ErrBusiness("unknown_setting_field")
	}

	return nil
}

// AddSpecialDay cria uma linha vazia com identificador temporário
// (nunca enviado à base de dados) e devolve esse identificador.
func (e *Editor) AddSpecialDay() string {
	tempID := "temp-" + uuid.NewString()

	e.agg.SpecialDays = append(e.agg.SpecialDays, SpecialDayEdit{
		SpecialDay: models.SpecialDay{
			TenantID: e.agg.TenantID,
			IsClosed: true,
		},
		TempID: tempID,
		IsNew:  true,
	})

	return tempID
}

// RemoveSpecialDay descarta linhas novas e marca linhas persistidas
// para remoção no próximo save.
func (e *Editor) RemoveSpecialDay(id string) {
	out := e.agg.SpecialDays[:0]
	for _, sd := range e.agg.SpecialDays {
		if sd.EditID() == id {
			if sd.IsNew {
				continue
			}
			sd.Deleted = true
		}
		out = append(out, sd)
	}
	e.agg.SpecialDays = out
}

func (e *Editor) SetSpecialDayField(id, field string, value any) error {
	for i := range e.agg.SpecialDays {
		sd := &e.agg.SpecialDays[i]
		if sd.EditID() != id {
			continue
		}

		switch field {
		case "date":
			v, ok := value.(string)
			if !ok {
				return httperr.ErrBusiness("invalid_special_day_value")
			}
			sd.Date = v
		case "reason":
			v, ok := value.(string)
			if !ok {
				return httperr.ErrBusiness("invalid_special_day_value")
			}
			sd.Reason = v
		case "is_closed":
			v, ok := value.(bool)
			if !ok {
				return httperr.ErrBusiness("invalid_special_day_value")
			}
			sd.IsClosed = v
		default:
			return httperr.ErrBusiness("unknown_special_day_field")
		}

		return nil
	}

	return httperr.ErrBusiness("special_day_not_found")
}

// PendingSpecialDays devolve as linhas que o save vai enviar como upsert:
// data preenchida e não marcadas como removidas.
func (e *Editor) PendingSpecialDays() []SpecialDayEdit {
	var out []SpecialDayEdit
	for _, sd := range e.agg.SpecialDays {
		if sd.Date == "" || sd.Deleted {
			continue
		}
		out = append(out, sd)
	}
	return out
}

// ===============================
// Coerção de valores de formulário
// ===============================

func optionalTime(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, httperr.ErrBusiness("invalid_setting_value")
		}
		return n, nil
	default:
		return 0, httperr.ErrBusiness("invalid_setting_value")
	}
}

func asOptionalInt(value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *int:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_setting_value")
		}
		return &n, nil
	default:
		n, err := asInt(value)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
}
