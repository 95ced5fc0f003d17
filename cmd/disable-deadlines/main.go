package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shuttle_booking_backend/internal/config"
	"shuttle_booking_backend/internal/database"
	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "Optional: path to a config file")
	restore := flag.Bool("restore", false, "Drop stored overrides so the configured deadlines apply again")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.Log.Level, "console")

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	settingService := services.NewSettingService(repositories.NewSettingRepository(db), cfg.Booking.Deadlines)
	var deadlines models.Deadlines
	if *restore {
		deadlines, err = settingService.ResetDeadlines(ctx)
	} else {
		deadlines, err = settingService.DisableDeadlines(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to update deadlines: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deadlines now in force: %+v\n", deadlines)
}
