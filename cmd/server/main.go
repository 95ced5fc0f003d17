package main

import (
	"flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shuttle_booking_backend/internal/config"
	"shuttle_booking_backend/internal/database"
	"shuttle_booking_backend/internal/line"
	"shuttle_booking_backend/internal/middleware"
	"shuttle_booking_backend/internal/router"
	"shuttle_booking_backend/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: ./config.yaml or ./config/config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize Database
	db, err := database.InitDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if cfg.DB.MigrateOnRun {
		if err := database.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	lineClient, err := line.NewClient(cfg.Line.ChannelSecret, cfg.Line.ChannelToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create LINE client")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	if err := router.Setup(engine, db, cfg, lineClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port, "base_url": cfg.Server.BaseURL})
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
