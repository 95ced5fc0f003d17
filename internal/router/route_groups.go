package router

import (
	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/handlers"
	"shuttle_booking_backend/internal/middleware"
)

// SetupBotRoutes sets up the LINE webhook and the QR image endpoint.
func SetupBotRoutes(engine *gin.Engine, webhookHandler *handlers.WebhookHandler, qrHandler *handlers.QRHandler) {
	engine.POST("/callback", middleware.BodyLimit(webhookBodyLimit), webhookHandler.Callback)
	engine.GET("/qr/:code", qrHandler.GetQRCode)
}

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}
}

// SetupSettingsRoutes sets up the deadline settings routes.
func SetupSettingsRoutes(adminGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := adminGroup.Group("/settings/deadlines")
	{
		settingRoutes.GET("", settingHandler.GetDeadlines)
		settingRoutes.PUT("", settingHandler.UpdateDeadlines)
		settingRoutes.POST("/disable", settingHandler.DisableDeadlines)
		settingRoutes.DELETE("", settingHandler.ResetDeadlines)
	}
}

// SetupEmployeeRoutes sets up the employee routes.
func SetupEmployeeRoutes(adminGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := adminGroup.Group("/employees")
	{
		employeeRoutes.GET("", employeeHandler.ListEmployees)
		employeeRoutes.POST("", employeeHandler.CreateEmployee)
		employeeRoutes.PATCH("/:code/deactivate", employeeHandler.DeactivateEmployee)
	}
}

// SetupReportRoutes sets up the booking roster routes.
func SetupReportRoutes(adminGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := adminGroup.Group("/bookings")
	{
		reportRoutes.GET("", reportHandler.GetRoster)
		reportRoutes.GET("/export", reportHandler.ExportRoster)
	}
}
