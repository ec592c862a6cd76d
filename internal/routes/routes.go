package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	"github.com/ZapAtende01/whatsapp-crm/internal/cache"
	"github.com/ZapAtende01/whatsapp-crm/internal/config"
	"github.com/ZapAtende01/whatsapp-crm/internal/handlers"
	infraRepo "github.com/ZapAtende01/whatsapp-crm/internal/infra/repository"
	"github.com/ZapAtende01/whatsapp-crm/internal/media"
	"github.com/ZapAtende01/whatsapp-crm/internal/metrics"
	"github.com/ZapAtende01/whatsapp-crm/internal/middleware"
	ucAppointment "github.com/ZapAtende01/whatsapp-crm/internal/usecase/appointment"
	ucSchedule "github.com/ZapAtende01/whatsapp-crm/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	redisCache := cache.New(cfg)
	uploader := media.NewUploader(cfg)

	// ======================================================
	// 🧠 USE CASES — SCHEDULE
	// ======================================================
	loadScheduleUC := ucSchedule.NewLoadSchedule(scheduleRepo)

	saveScheduleUC := ucSchedule.NewSaveSchedule(
		scheduleRepo,
		auditDispatcher,
	)

	availabilityUC := ucSchedule.NewGetAvailability(scheduleRepo)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db, auditDispatcher)

	customerHandler := handlers.NewCustomerHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)

	scheduleHandler := handlers.NewScheduleHandler(
		loadScheduleUC,
		saveScheduleUC,
		availabilityUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(db, createAppointmentUC, auditDispatcher)

	messageHandler := handlers.NewMessageHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, redisCache)
	mediaHandler := handlers.NewMediaHandler(uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 📈 METRICS
	// ======================================================
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)

			secured.GET("/me/tenant", tenantHandler.Get)
			secured.PUT("/me/tenant", tenantHandler.Update)

			secured.GET("/me/customers", customerHandler.List)
			secured.POST("/me/customers", customerHandler.Create)
			secured.GET("/me/customers/:id", customerHandler.Get)
			secured.PUT("/me/customers/:id", customerHandler.Update)
			secured.DELETE("/me/customers/:id", customerHandler.Delete)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PUT("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)
			secured.GET("/me/schedule/availability", scheduleHandler.Availability)

			secured.GET("/me/appointments", appointmentHandler.List)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PUT("/me/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			secured.GET("/me/conversations", messageHandler.Conversations)
			secured.GET("/me/conversations/:phone/messages", messageHandler.Messages)

			secured.GET("/me/dashboard/metrics", dashboardHandler.Metrics)

			secured.POST("/me/media", mediaHandler.Upload)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
