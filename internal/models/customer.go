package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente do negócio, identificado pelo número de WhatsApp
type Customer struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;index" json:"tenant_id"`

	Name        string `gorm:"size:100" json:"name"`
	PhoneNumber string `gorm:"size:20;not null" json:"phone_number"`
	Email       string `gorm:"size:100" json:"email"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
