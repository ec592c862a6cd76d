package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;index" json:"tenant_id"`

	ServiceName string `gorm:"size:100;not null" json:"service_name"`
	Description string `gorm:"size:255" json:"description"`

	// Preço e duração são texto livre ("25.00€", "45 min") — a granularidade
	// real de agendamento vem de booking_settings.slot_duration.
	Price    string `gorm:"size:20" json:"price"`
	Duration string `gorm:"size:50" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
