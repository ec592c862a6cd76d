package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListDayHours(
	ctx context.Context,
	tenantID string,
) ([]models.BusinessHour, error) {

	var hours []models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *ScheduleGormRepository) UpsertDayHours(
	ctx context.Context,
	day *models.BusinessHour,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_open", "open_time", "close_time",
				"break_start", "break_end", "updated_at",
			}),
		}).
		Create(day).Error
}

// --------------------------------------------------
// Booking settings
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSettings(
	ctx context.Context,
	tenantID string,
) (*models.BookingSetting, error) {

	var settings models.BookingSetting
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *ScheduleGormRepository) UpsertSettings(
	ctx context.Context,
	settings *models.BookingSetting,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"slot_duration", "buffer_time", "advance_booking_days",
				"min_advance_hours", "max_bookings_per_day",
				"allow_multiple_bookings", "updated_at",
			}),
		}).
		Create(settings).Error
}

// --------------------------------------------------
// Special days
// --------------------------------------------------

func (r *ScheduleGormRepository) ListSpecialDaysFrom(
	ctx context.Context,
	tenantID string,
	from string,
) ([]models.SpecialDay, error) {

	var days []models.SpecialDay
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ?", tenantID, from).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *ScheduleGormRepository) GetSpecialDay(
	ctx context.Context,
	tenantID string,
	date string,
) (*models.SpecialDay, error) {

	var day models.SpecialDay
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date = ?", tenantID, date).
		First(&day).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *ScheduleGormRepository) UpsertSpecialDay(
	ctx context.Context,
	day *models.SpecialDay,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_closed", "reason", "updated_at",
			}),
		}).
		Create(day).Error
}

func (r *ScheduleGormRepository) DeleteSpecialDay(
	ctx context.Context,
	tenantID string,
	date string,
) error {

	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND date = ?", tenantID, date).
		Delete(&models.SpecialDay{}).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	tenantID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND appointment_date >= ? AND appointment_date < ?",
			tenantID, start, end,
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleGormRepository) CountCustomerAppointmentsFrom(
	ctx context.Context,
	tenantID string,
	customerID string,
	from time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"tenant_id = ? AND customer_id = ? AND appointment_date >= ?",
			tenantID, customerID, from,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	tenantID string,
	serviceID string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
