package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
	"github.com/ZapAtende01/whatsapp-crm/internal/httperr"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID   string
	ProfileID  string
	CustomerID string
	ServiceID  string

	Date  string // "2006-01-02"
	Time  string // "15:04"
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment aplica as regras de agendamento do tenant
// (expediente, pausa, dias especiais, antecedências, limite diário,
// buffer e marcações múltiplas) antes de gravar.
type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora (relógio de parede, sem timezone)
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		time.Local,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	if _, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Regras do tenant
	// --------------------------------------------------
	settings, err := uc.repo.GetSettings(ctx, in.TenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		defaults := domain.DefaultSettings(in.TenantID)
		settings = &defaults
	}

	now := time.Now()

	if start.Before(now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	todayMid := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.After(todayMid.AddDate(0, 0, settings.AdvanceBookingDays).Add(24 * time.Hour)) {
		return nil, httperr.ErrBusiness("too_far_ahead")
	}

	// --------------------------------------------------
	// 4️⃣ Dia especial fechado
	// --------------------------------------------------
	special, err := uc.repo.GetSpecialDay(ctx, in.TenantID, start.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if special != nil && special.IsClosed {
		return nil, httperr.ErrBusiness("closed_on_date")
	}

	// --------------------------------------------------
	// 5️⃣ Expediente + pausa
	// --------------------------------------------------
	end := start.Add(time.Duration(settings.SlotDuration) * time.Minute)

	rows, err := uc.repo.ListDayHours(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	week := domain.WeekFromRows(in.TenantID, rows)

	if !withinDayHours(week[int(start.Weekday())], start, end) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// 6️⃣ Limite diário + conflito com buffer
	// --------------------------------------------------
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := uc.repo.ListAppointmentsBetween(
		ctx,
		in.TenantID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	if settings.MaxBookingsPerDay != nil && len(existing) >= *settings.MaxBookingsPerDay {
		return nil, httperr.ErrBusiness("day_fully_booked")
	}

	slotDur := time.Duration(settings.SlotDuration) * time.Minute
	buffer := time.Duration(settings.BufferTime) * time.Minute
	for _, ap := range existing {
		apStart := ap.AppointmentDate.Add(-buffer)
		apEnd := ap.AppointmentDate.Add(slotDur + buffer)
		if start.Before(apEnd) && end.After(apStart) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	// --------------------------------------------------
	// 7️⃣ Marcações múltiplas do mesmo cliente
	// --------------------------------------------------
	if !settings.AllowMultipleBookings {
		count, err := uc.repo.CountCustomerAppointmentsFrom(
			ctx,
			in.TenantID,
			in.CustomerID,
			now,
		)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, httperr.ErrBusiness("customer_already_booked")
		}
	}

	// --------------------------------------------------
	// 8️⃣ Criação
	// --------------------------------------------------
	ap := &models.Appointment{
		TenantID:        in.TenantID,
		CustomerID:      in.CustomerID,
		ServiceID:       in.ServiceID,
		AppointmentDate: start,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID:  in.TenantID,
		ProfileID: &in.ProfileID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  ap.ID,
	})

	return ap, nil
}

// withinDayHours valida expediente e pausa do dia.
func withinDayHours(day models.BusinessHour, start, end time.Time) bool {
	if !day.IsOpen || day.OpenTime == "" || day.CloseTime == "" {
		return false
	}

	loc := start.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	open := parseHM(day.OpenTime)
	closeT := parseHM(day.CloseTime)

	if start.Before(open) || end.After(closeT) {
		return false
	}

	if day.BreakStart != nil && day.BreakEnd != nil &&
		*day.BreakStart != "" && *day.BreakEnd != "" {

		breakStart := parseHM(*day.BreakStart)
		breakEnd := parseHM(*day.BreakEnd)

		if start.Before(breakEnd) && end.After(breakStart) {
			return false
		}
	}

	return true
}
