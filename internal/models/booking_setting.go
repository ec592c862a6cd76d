package models

import "time"

// BookingSetting é singleton por tenant (conflito de upsert em tenant_id).
type BookingSetting struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;uniqueIndex" json:"tenant_id"`

	SlotDuration       int `gorm:"default:30" json:"slot_duration"`         // minutos, múltiplo de 15
	BufferTime         int `gorm:"default:0" json:"buffer_time"`            // minutos entre marcações
	AdvanceBookingDays int `gorm:"default:30" json:"advance_booking_days"`  // janela máxima
	MinAdvanceHours    int `gorm:"default:24" json:"min_advance_hours"`     // antecedência mínima

	MaxBookingsPerDay     *int `json:"max_bookings_per_day"` // nil = sem limite
	AllowMultipleBookings bool `gorm:"default:false" json:"allow_multiple_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
