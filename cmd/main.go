package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/database"
	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/eventful-api/eventful-backend/internal/event"
	"github.com/eventful-api/eventful-backend/internal/notification"
	"github.com/eventful-api/eventful-backend/middleware"
	"github.com/eventful-api/eventful-backend/routes"
	"github.com/eventful-api/eventful-backend/utils"
)

// @title Eventful API
// @version 1.0
// @description Event management backend: organizers publish events, users enroll, check in and get reminders.
// @BasePath /
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (cache only, not fatal when unavailable)
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed: %v (continuing without cache)", err)
	}

	// Init Kafka
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auth.Organizer{},
		&event.Event{},
		&event.Enrollment{},
		&notification.NotificationLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification plumbing: reminder sweep + enrollment confirmation consumer
	notifRepo := notification.NewRepository(db)
	notifSvc := notification.NewService(notifRepo, notification.NewEmailSender(cfg))
	notification.NewScheduler(notifSvc, cfg.SweepInterval).Start(ctx)
	notification.StartKafkaConsumer(ctx, cfg, notifSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RateLimiter())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, db, notifSvc)

	log.Printf("✅ Eventful API listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
