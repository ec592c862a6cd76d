package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/dto"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// ======================================================
// LIST CONVERSATIONS (caixa de entrada)
// ======================================================

// Conversations agrega o histórico por número: uma linha por conversa,
// ordenada pela mensagem mais recente.
func (h *MessageHandler) Conversations(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	var conversations []dto.ConversationDTO
	err := h.db.
		Table("message_history").
		Select(`phone_number,
			MAX(created_at) AS last_message_at,
			COUNT(*) AS total_messages,
			(ARRAY_AGG(COALESCE(NULLIF(user_message, ''), bot_response)
				ORDER BY created_at DESC))[1] AS last_message`).
		Where("tenant_id = ?", tenantID).
		Group("phone_number").
		Order("last_message_at DESC").
		Scan(&conversations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// ======================================================
// LIST MESSAGES (uma conversa)
// ======================================================
func (h *MessageHandler) Messages(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)
	phone := c.Param("phone")

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_limit"})
			return
		}
		limit = n
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_offset"})
			return
		}
		offset = n
	}

	var messages []models.Message
	if err := h.db.
		Where("tenant_id = ? AND phone_number = ?", tenantID, phone).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
