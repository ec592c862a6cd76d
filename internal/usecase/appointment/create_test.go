package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/httperr"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// fakeRepo cobre só o que o use case de criação toca.
type fakeRepo struct {
	days     map[int]models.BusinessHour
	settings *models.BookingSetting
	specials map[string]models.SpecialDay
	services map[string]models.Service

	appointments []models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		days:     map[int]models.BusinessHour{},
		specials: map[string]models.SpecialDay{},
		services: map[string]models.Service{},
	}
}

func (f *fakeRepo) ListDayHours(ctx context.Context, tenantID string) ([]models.BusinessHour, error) {
	var out []models.BusinessHour
	for _, d := range f.days {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRepo) UpsertDayHours(ctx context.Context, day *models.BusinessHour) error {
	f.days[day.DayOfWeek] = *day
	return nil
}

func (f *fakeRepo) GetSettings(ctx context.Context, tenantID string) (*models.BookingSetting, error) {
	if f.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeRepo) UpsertSettings(ctx context.Context, settings *models.BookingSetting) error {
	s := *settings
	f.settings = &s
	return nil
}

func (f *fakeRepo) ListSpecialDaysFrom(ctx context.Context, tenantID, from string) ([]models.SpecialDay, error) {
	return nil, nil
}

func (f *fakeRepo) GetSpecialDay(ctx context.Context, tenantID, date string) (*models.SpecialDay, error) {
	if sd, ok := f.specials[date]; ok {
		return &sd, nil
	}
	return nil, nil
}

func (f *fakeRepo) UpsertSpecialDay(ctx context.Context, day *models.SpecialDay) error {
	f.specials[day.Date] = *day
	return nil
}

func (f *fakeRepo) DeleteSpecialDay(ctx context.Context, tenantID, date string) error {
	delete(f.specials, date)
	return nil
}

func (f *fakeRepo) ListAppointmentsBetween(ctx context.Context, tenantID string, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.AppointmentDate.Before(start) && ap.AppointmentDate.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountCustomerAppointmentsFrom(ctx context.Context, tenantID, customerID string, from time.Time) (int64, error) {
	var n int64
	for _, ap := range f.appointments {
		if ap.CustomerID == customerID && !ap.AppointmentDate.Before(from) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetService(ctx context.Context, tenantID, serviceID string) (*models.Service, error) {
	if s, ok := f.services[serviceID]; ok {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ------------------------------------------------------

func bookableRepo() *fakeRepo {
	repo := newFakeRepo()

	for wd := 0; wd < 7; wd++ {
		repo.days[wd] = models.BusinessHour{
			TenantID: "tenant-1", DayOfWeek: wd,
			IsOpen: true, OpenTime: "08:00", CloseTime: "20:00",
		}
	}
	repo.settings = &models.BookingSetting{
		TenantID:           "tenant-1",
		SlotDuration:       30,
		BufferTime:         0,
		AdvanceBookingDays: 30,
		MinAdvanceHours:    0,
	}
	repo.services["svc-1"] = models.Service{
		ID: "svc-1", TenantID: "tenant-1", ServiceName: "Corte",
	}

	return repo
}

func validInput(date time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		TenantID:   "tenant-1",
		ProfileID:  "profile-1",
		CustomerID: "cust-1",
		ServiceID:  "svc-1",
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
	}
}

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	got, ok := httperr.BusinessCode(err)
	require.True(t, ok, "esperava erro de negócio, obtive %v", err)
	assert.Equal(t, code, got)
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	repo := bookableRepo()
	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	date := time.Now().AddDate(0, 0, 3)
	ap, err := uc.Execute(context.Background(), validInput(date))
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", ap.TenantID)
	assert.Equal(t, "cust-1", ap.CustomerID)
	assert.Equal(t, 10, ap.AppointmentDate.Hour())
	require.Len(t, repo.appointments, 1)
}

func TestCreateAppointmentInvalidDateTime(t *testing.T) {
	uc := NewCreateAppointment(bookableRepo(), audit.NopDispatcher())

	in := validInput(time.Now().AddDate(0, 0, 3))
	in.Time = "10h00"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "invalid_date_or_time")
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	uc := NewCreateAppointment(bookableRepo(), audit.NopDispatcher())

	in := validInput(time.Now().AddDate(0, 0, 3))
	in.ServiceID = "svc-404"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "service_not_found")
}

func TestCreateAppointmentTooSoon(t *testing.T) {
	repo := bookableRepo()
	repo.settings.MinAdvanceHours = 48
	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(time.Now().AddDate(0, 0, 1)))
	assertBusinessCode(t, err, "too_soon")
}

func TestCreateAppointmentTooFarAhead(t *testing.T) {
	repo := bookableRepo()
	repo.settings.AdvanceBookingDays = 7
	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(time.Now().AddDate(0, 0, 20)))
	assertBusinessCode(t, err, "too_far_ahead")
}

func TestCreateAppointmentClosedSpecialDay(t *testing.T) {
	repo := bookableRepo()
	date := time.Now().AddDate(0, 0, 3)
	repo.specials[date.Format("2006-01-02")] = models.SpecialDay{
		TenantID: "tenant-1",
		Date:     date.Format("2006-01-02"),
		IsClosed: true,
		Reason:   "Feriado",
	}
	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(date))
	assertBusinessCode(t, err, "closed_on_date")
}

func TestCreateAppointmentOutsideHours(t *testing.T) {
	uc := NewCreateAppointment(bookableRepo(), audit.NopDispatcher())

	in := validInput(time.Now().AddDate(0, 0, 3))
	in.Time = "21:00"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "outside_business_hours")
}

func TestCreateAppointmentDuringBreak(t *testing.T) {
	repo := bookableRepo()
	date := time.Now().AddDate(0, 0, 3)
	wd := int(date.Weekday())

	day := repo.days[wd]
	bs, be := "12:00", "13:00"
	day.BreakStart, day.BreakEnd = &bs, &be
	repo.days[wd] = day

	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	in := validInput(date)
	in.Time = "12:00"

	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, "outside_business_hours")
}

func TestCreateAppointmentDailyCap(t *testing.T) {
	repo := bookableRepo()
	limit := 1
	repo.settings.MaxBookingsPerDay = &limit

	date := time.Now().AddDate(0, 0, 3)
	repo.appointments = append(repo.appointments, models.Appointment{
		TenantID:   "tenant-1",
		CustomerID: "cust-2",
		AppointmentDate: time.Date(
			date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.Local,
		),
	})

	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(date))
	assertBusinessCode(t, err, "day_fully_booked")
}

func TestCreateAppointmentTimeConflictWithBuffer(t *testing.T) {
	repo := bookableRepo()
	repo.settings.BufferTime = 15
	repo.settings.AllowMultipleBookings = true

	date := time.Now().AddDate(0, 0, 3)
	repo.appointments = append(repo.appointments, models.Appointment{
		TenantID:   "tenant-1",
		CustomerID: "cust-2",
		AppointmentDate: time.Date(
			date.Year(), date.Month(), date.Day(), 10, 30, 0, 0, time.Local,
		),
	})

	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	// 10:00–10:30 encosta no buffer de 15min antes das 10:30
	_, err := uc.Execute(context.Background(), validInput(date))
	assertBusinessCode(t, err, "time_conflict")
}

func TestCreateAppointmentCustomerAlreadyBooked(t *testing.T) {
	repo := bookableRepo()

	repo.appointments = append(repo.appointments, models.Appointment{
		TenantID:        "tenant-1",
		CustomerID:      "cust-1",
		AppointmentDate: time.Now().AddDate(0, 0, 10),
	})

	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(time.Now().AddDate(0, 0, 3)))
	assertBusinessCode(t, err, "customer_already_booked")
}

func TestCreateAppointmentMultipleBookingsAllowed(t *testing.T) {
	repo := bookableRepo()
	repo.settings.AllowMultipleBookings = true

	repo.appointments = append(repo.appointments, models.Appointment{
		TenantID:        "tenant-1",
		CustomerID:      "cust-1",
		AppointmentDate: time.Now().AddDate(0, 0, 10),
	})

	uc := NewCreateAppointment(repo, audit.NopDispatcher())

	_, err := uc.Execute(context.Background(), validInput(time.Now().AddDate(0, 0, 3)))
	require.NoError(t, err)
}

func TestCreateAppointmentRuleErrorsAreBusinessErrors(t *testing.T) {
	uc := NewCreateAppointment(bookableRepo(), audit.NopDispatcher())

	in := validInput(time.Now().AddDate(0, 0, 3))
	in.Time = "10h"

	_, err := uc.Execute(context.Background(), in)
	var be httperr.BusinessError
	assert.True(t, errors.As(err, &be))
}
