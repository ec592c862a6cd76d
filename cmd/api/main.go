package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ZapAtende01/whatsapp-crm/internal/config"
	dbpkg "github.com/ZapAtende01/whatsapp-crm/internal/db"
	"github.com/ZapAtende01/whatsapp-crm/internal/metrics"
	"github.com/ZapAtende01/whatsapp-crm/internal/routes"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	metrics.Register()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logrus.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
