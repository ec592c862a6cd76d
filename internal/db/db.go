package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ZapAtende01/whatsapp-crm/internal/config"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Profile{},
		&models.Customer{},
		&models.Service{},
		&models.BusinessHour{},
		&models.BookingSetting{},
		&models.SpecialDay{},
		&models.Appointment{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}

	return db
}
