package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessName  string `gorm:"size:100;not null" json:"business_name"`
	BusinessPhone string `gorm:"size:20" json:"business_phone"`
	Address       string `gorm:"size:200" json:"address"`

	// Texto livre mostrado ao cliente ("Segunda a Sexta, 9h às 18h").
	// O horário estruturado vive em business_hours.
	WorkingHours string `gorm:"size:100" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
