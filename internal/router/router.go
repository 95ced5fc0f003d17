package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/config"
	"shuttle_booking_backend/internal/handlers"
	"shuttle_booking_backend/internal/line"
	"shuttle_booking_backend/internal/middleware"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/internal/services"
)

// webhookBodyLimit caps webhook deliveries at 1 MiB.
const webhookBodyLimit = 1 << 20

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config, lineClient line.Client) error {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return fmt.Errorf("booking timezone: %w", err)
	}
	now := services.NewClock(loc)

	// Initialize Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	identityRepo := repositories.NewIdentityRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize Services
	settingService := services.NewSettingService(settingRepo, cfg.Booking.Deadlines)
	admission := services.NewAdmissionPolicy(settingService)
	bindingService := services.NewBindingService(identityRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	bookingService := services.NewBookingService(bookingRepo, catalogRepo, admission)
	verificationService := services.NewVerificationService(bookingRepo, employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	reportService := services.NewReportService(bookingService)
	authService := services.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	conversationService := services.NewConversationService(
		bindingService, catalogService, bookingService, verificationService,
		employeeService, admission, now, cfg.Server.BaseURL,
	)

	// Initialize Handlers
	webhookHandler := handlers.NewWebhookHandler(lineClient, conversationService)
	qrHandler := handlers.NewQRHandler(verificationService)
	authHandler := handlers.NewAuthHandler(authService)
	settingHandler := handlers.NewSettingHandler(settingService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	reportHandler := handlers.NewReportHandler(reportService, now)

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "交通車預約系統正在運行中！")
	})
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	SetupBotRoutes(engine, webhookHandler, qrHandler)

	apiV1 := engine.Group("/api/v1")
	SetupAuthRoutes(apiV1, authHandler)

	admin := apiV1.Group("/admin")
	admin.Use(middleware.AuthMiddleware([]byte(cfg.Admin.JWTSecret)), middleware.RoleAuthMiddleware(services.RoleAdmin))
	{
		SetupSettingsRoutes(admin, settingHandler)
		SetupEmployeeRoutes(admin, employeeHandler)
		SetupReportRoutes(admin, reportHandler)
	}
	return nil
}
