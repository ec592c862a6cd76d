package models

import "time"

// Message é uma entrada do histórico WhatsApp (tabela message_history).
// Cada linha carrega a mensagem do cliente e/ou a resposta do bot.
type Message struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;index:idx_message_history_tenant_phone" json:"tenant_id"`

	PhoneNumber string `gorm:"size:20;index:idx_message_history_tenant_phone" json:"phone_number"`
	UserMessage string `gorm:"type:text" json:"user_message"`
	BotResponse string `gorm:"type:text" json:"bot_response"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "message_history"
}
