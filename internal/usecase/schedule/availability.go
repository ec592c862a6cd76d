package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
)

// ======================================================
// AVAILABILITY
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve os inícios de marcação livres para uma data,
// aplicando as mesmas regras que a criação de agendamentos.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	tenantID string,
	date time.Time,
) ([]domain.Slot, error) {

	rows, err := uc.repo.ListDayHours(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	week := domain.WeekFromRows(tenantID, rows)
	day := week[int(date.Weekday())]

	settings, err := uc.repo.GetSettings(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		defaults := domain.DefaultSettings(tenantID)
		settings = &defaults
	}

	special, err := uc.repo.GetSpecialDay(ctx, tenantID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	existing, err := uc.repo.ListAppointmentsBetween(
		ctx,
		tenantID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	slots := domain.AvailableSlots(domain.SlotInput{
		Date:       date,
		Day:        day,
		Settings:   *settings,
		Existing:   existing,
		SpecialDay: special,
		Now:        time.Now(),
	})

	if slots == nil {
		slots = []domain.Slot{}
	}

	return slots, nil
}
