package schedule

import (
	"context"
	"time"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type Repository interface {
	// -------- Business hours --------
	ListDayHours(
		ctx context.Context,
		tenantID string,
	) ([]models.BusinessHour, error)

	UpsertDayHours(
		ctx context.Context,
		day *models.BusinessHour,
	) error

	// -------- Booking settings --------
	GetSettings(
		ctx context.Context,
		tenantID string,
	) (*models.BookingSetting, error)

	UpsertSettings(
		ctx context.Context,
		settings *models.BookingSetting,
	) error

	// -------- Special days --------
	ListSpecialDaysFrom(
		ctx context.Context,
		tenantID string,
		from string,
	) ([]models.SpecialDay, error)

	// GetSpecialDay devolve (nil, nil) quando não há sobreposição na data.
	GetSpecialDay(
		ctx context.Context,
		tenantID string,
		date string,
	) (*models.SpecialDay, error)

	UpsertSpecialDay(
		ctx context.Context,
		day *models.SpecialDay,
	) error

	DeleteSpecialDay(
		ctx context.Context,
		tenantID string,
		date string,
	) error

	// -------- Appointments (leitura para regras / criação validada) --------
	ListAppointmentsBetween(
		ctx context.Context,
		tenantID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CountCustomerAppointmentsFrom(
		ctx context.Context,
		tenantID string,
		customerID string,
		from time.Time,
	) (int64, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Services --------
	GetService(
		ctx context.Context,
		tenantID string,
		serviceID string,
	) (*models.Service, error)
}
