package models

import "time"

// SpecialDay sobrepõe o horário semanal numa data concreta (feriado, férias).
type SpecialDay struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;uniqueIndex:idx_special_days_tenant_date" json:"tenant_id"`

	Date     string `gorm:"size:10;uniqueIndex:idx_special_days_tenant_date" json:"date"` // "2006-01-02"
	IsClosed bool   `gorm:"default:true" json:"is_closed"`
	Reason   string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
