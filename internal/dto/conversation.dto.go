package dto

import "time"

// ConversationDTO é uma linha da caixa de entrada: uma conversa por
// número de WhatsApp, com a última mensagem trocada.
type ConversationDTO struct {
	PhoneNumber   string    `json:"phone_number"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	TotalMessages int64     `json:"total_messages"`
}
