package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/config"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
	"github.com/ZapAtende01/whatsapp-crm/internal/validators"
)

const uniqueViolation = "23505"

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName  string `json:"business_name" binding:"required"`
	BusinessPhone string `json:"business_phone"`
	Address       string `json:"address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	tenant := models.Tenant{
		BusinessName:  req.BusinessName,
		BusinessPhone: req.BusinessPhone,
		Address:       req.Address,
	}

	if err := h.db.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_tenant"})
		return
	}

	profile := models.Profile{
		TenantID:     tenant.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&profile).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "email_already_registered",
				"message": "Este email já está registrado.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_profile"})
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"profile": gin.H{
			"id":        profile.ID,
			"name":      profile.Name,
			"email":     profile.Email,
			"phone":     profile.Phone,
			"tenant_id": profile.TenantID,
		},
		"tenant": gin.H{
			"id":             tenant.ID,
			"business_name":  tenant.BusinessName,
			"business_phone": tenant.BusinessPhone,
			"address":        tenant.Address,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var profile models.Profile
	if err := h.db.Preload("Tenant").
		Where("email = ?", email).
		First(&profile).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"id":        profile.ID,
			"name":      profile.Name,
			"email":     profile.Email,
			"phone":     profile.Phone,
			"tenant_id": profile.TenantID,
		},
		"tenant": gin.H{
			"id":             profile.Tenant.ID,
			"business_name":  profile.Tenant.BusinessName,
			"business_phone": profile.Tenant.BusinessPhone,
			"address":        profile.Tenant.Address,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":      profile.ID,
		"tenantId": profile.TenantID,
		"role":     profile.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
