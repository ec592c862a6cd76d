package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

func TestLoadScheduleEmptyTenantGetsDefaults(t *testing.T) {
	repo := newFakeRepo()
	uc := NewLoadSchedule(repo)

	agg, err := uc.Execute(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", agg.TenantID)

	// Semana padrão completa, nada persistido
	assert.False(t, agg.Days[0].IsOpen)
	assert.Equal(t, "09:00", agg.Days[1].OpenTime)
	assert.Equal(t, "13:00", agg.Days[6].CloseTime)
	assert.Empty(t, repo.days)

	// Regras padrão em memória, nada persistido
	assert.Equal(t, 30, agg.Settings.SlotDuration)
	assert.Equal(t, 24, agg.Settings.MinAdvanceHours)
	assert.Nil(t, agg.Settings.MaxBookingsPerDay)
	assert.Nil(t, repo.settings)

	assert.Empty(t, agg.SpecialDays)
}

func TestLoadSchedulePartialRowsFilledWithDefaults(t *testing.T) {
	repo := newFakeRepo()
	repo.days[1] = models.BusinessHour{
		ID: 11, TenantID: "tenant-1", DayOfWeek: 1,
		IsOpen: true, OpenTime: "07:00", CloseTime: "15:00",
	}

	uc := NewLoadSchedule(repo)
	agg, err := uc.Execute(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, "07:00", agg.Days[1].OpenTime)
	// Dias sem linha seguem o padrão
	assert.Equal(t, "09:00", agg.Days[2].OpenTime)
	assert.False(t, agg.Days[0].IsOpen)
}

func TestLoadScheduleKeepsPersistedSettings(t *testing.T) {
	repo := newFakeRepo()
	limit := 5
	repo.settings = &models.BookingSetting{
		ID: 1, TenantID: "tenant-1",
		SlotDuration: 60, BufferTime: 10,
		AdvanceBookingDays: 14, MinAdvanceHours: 2,
		MaxBookingsPerDay: &limit, AllowMultipleBookings: true,
	}

	uc := NewLoadSchedule(repo)
	agg, err := uc.Execute(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, 60, agg.Settings.SlotDuration)
	require.NotNil(t, agg.Settings.MaxBookingsPerDay)
	assert.Equal(t, 5, *agg.Settings.MaxBookingsPerDay)
	assert.True(t, agg.Settings.AllowMultipleBookings)
}

func TestLoadScheduleWrapsSpecialDays(t *testing.T) {
	repo := newFakeRepo()
	repo.specials["2099-12-25"] = models.SpecialDay{
		ID: 3, TenantID: "tenant-1",
		Date: "2099-12-25", IsClosed: true, Reason: "Natal",
	}

	uc := NewLoadSchedule(repo)
	agg, err := uc.Execute(context.Background(), "tenant-1")
	require.NoError(t, err)

	require.Len(t, agg.SpecialDays, 1)
	sd := agg.SpecialDays[0]
	assert.Equal(t, "2099-12-25", sd.Date)
	assert.False(t, sd.IsNew)
	assert.False(t, sd.Deleted)
	assert.Equal(t, "3", sd.EditID())
}
