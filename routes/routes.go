package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/internal/auth"
	"github.com/eventful-api/eventful-backend/internal/event"
	"github.com/eventful-api/eventful-backend/internal/notification"
	"github.com/eventful-api/eventful-backend/internal/reports"
	"github.com/eventful-api/eventful-backend/middleware"

	_ "github.com/eventful-api/eventful-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module's handler into the router.
func Setup(router *gin.Engine, cfg *config.Config, db *gorm.DB, notifSvc notification.Service) {
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, authRepo, cfg)
	eventSvc.NotifSvc = notifSvc
	eventHandler := event.NewHandler(eventSvc)

	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(reportsSvc)

	requireAuth := middleware.AuthMiddleware(authSvc)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ===== Users & Organizers =====
	users := router.Group("/users")
	{
		users.POST("/signup", authHandler.SignupUser)
		users.POST("/login", authHandler.LoginUser)
	}

	organizers := router.Group("/organizers")
	{
		organizers.POST("/signup", authHandler.SignupOrganizer)
		organizers.POST("/login", authHandler.LoginOrganizer)

		organizers.GET("/:id/analytics",
			requireAuth, middleware.RBACMiddleware(auth.RoleOrganizer),
			reportsHandler.GetOrganizerAnalytics)
		organizers.GET("/:id/analytics/export",
			requireAuth, middleware.RBACMiddleware(auth.RoleOrganizer),
			reportsHandler.ExportOrganizerAnalytics)
	}

	// ===== Events =====
	events := router.Group("/events")
	{
		events.GET("", eventHandler.GetAllEvents)
		events.GET("/:id", eventHandler.GetEvent)

		events.POST("",
			requireAuth, middleware.RBACMiddleware(auth.RoleOrganizer),
			eventHandler.CreateEvent)
		events.PATCH("/:id",
			requireAuth, middleware.RBACMiddleware(auth.RoleOrganizer),
			eventHandler.UpdateEvent)
		events.DELETE("/:id",
			requireAuth, middleware.RBACMiddleware(auth.RoleOrganizer),
			eventHandler.CancelEvent)

		events.POST("/:id/enroll",
			requireAuth, middleware.RBACMiddleware(auth.RoleUser),
			eventHandler.EnrollUser)
		events.DELETE("/enrollment/:id",
			requireAuth, middleware.RBACMiddleware(auth.RoleUser),
			eventHandler.CancelEnrollment)
		events.GET("/enrollment/:id/qrcode",
			requireAuth, middleware.RBACMiddleware(auth.RoleUser),
			eventHandler.EnrollmentQRCode)

		// No auth: this is the URL a kiosk hits when scanning a QR code.
		events.PATCH("/checkin/:eventId/:userId/:enrollmentId", eventHandler.CheckInUser)
	}
}
