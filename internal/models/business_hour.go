package models

import "time"

// BusinessHour é uma linha por dia da semana por tenant.
// Horas em "HH:MM" (relógio de parede, sem timezone).
type BusinessHour struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;uniqueIndex:idx_business_hours_tenant_day" json:"tenant_id"`

	DayOfWeek int  `gorm:"uniqueIndex:idx_business_hours_tenant_day" json:"day_of_week"` // 0 = Domingo
	IsOpen    bool `json:"is_open"`

	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	// Pausa: ambos presentes ou ambos ausentes.
	BreakStart *string `gorm:"size:5" json:"break_start"`
	BreakEnd   *string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
