package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ZapAtende01/whatsapp-crm/internal/media"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
)

const maxUploadBytes = 5 << 20 // 5 MiB

type MediaHandler struct {
	uploader *media.Uploader
}

func NewMediaHandler(uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// Upload recebe multipart "file", converte para WebP e devolve a key.
func (h *MediaHandler) Upload(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file_too_large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_file"})
		return
	}
	defer file.Close()

	key, err := h.uploader.Upload(c.Request.Context(), tenantID, file)
	if err != nil {
		logrus.WithError(err).Error("media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key})
}
