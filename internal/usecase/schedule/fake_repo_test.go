package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// fakeRepo é o repositório em memória usado pelos testes dos use cases.
// Os campos fail* forçam a falha de um grupo específico.
type fakeRepo struct {
	days     map[int]models.BusinessHour
	settings *models.BookingSetting
	specials map[string]models.SpecialDay // por data

	appointments []models.Appointment
	services     map[string]models.Service

	failDayHours    bool
	failSettings    bool
	failSpecialDays bool

	deletedDates []string
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		days:     map[int]models.BusinessHour{},
		specials: map[string]models.SpecialDay{},
		services: map[string]models.Service{},
		nextID:   1,
	}
}

var errForced = errors.New("forced failure")

func (f *fakeRepo) ListDayHours(ctx context.Context, tenantID string) ([]models.BusinessHour, error) {
	var out []models.BusinessHour
	for _, d := range f.days {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRepo) UpsertDayHours(ctx context.Context, day *models.BusinessHour) error {
	if f.failDayHours {
		return errForced
	}
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
	if f.failSettings {
		return errForced
	}
	s := *settings
	f.settings = &s
	return nil
}

func (f *fakeRepo) ListSpecialDaysFrom(ctx context.Context, tenantID, from string) ([]models.SpecialDay, error) {
	var out []models.SpecialDay
	for _, sd := range f.specials {
		if sd.Date >= from {
			out = append(out, sd)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSpecialDay(ctx context.Context, tenantID, date string) (*models.SpecialDay, error) {
	if sd, ok := f.specials[date]; ok {
		return &sd, nil
	}
	return nil, nil
}

func (f *fakeRepo) UpsertSpecialDay(ctx context.Context, day *models.SpecialDay) error {
	if f.failSpecialDays {
		return errForced
	}

	if existing, ok := f.specials[day.Date]; ok {
		day.ID = existing.ID
	} else {
		day.ID = f.nextID
		f.nextID++
	}
	f.specials[day.Date] = *day
	return nil
}

func (f *fakeRepo) DeleteSpecialDay(ctx context.Context, tenantID, date string) error {
	if f.failSpecialDays {
		return errForced
	}
	delete(f.specials, date)
	f.deletedDates = append(f.deletedDates, date)
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
