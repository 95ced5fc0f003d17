package services

import (
	"context"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/pkg/utils"
)

// --- Setting Errors ---
var (
	ErrInvalidDeadline = errors.New("deadline must be a 24h HH:MM value")
)

var deadlineKeys = []string{
	models.SettingBusDayDeadline,
	models.SettingBusNightDeadline,
	models.SettingMealDayDeadline,
	models.SettingMealNightDeadline,
}

// UpdateDeadlinesRequest DTO. Omitted fields keep their current value.
type UpdateDeadlinesRequest struct {
	BusDay    *string `json:"bus_day_deadline"`
	BusNight  *string `json:"bus_night_deadline"`
	MealDay   *string `json:"meal_day_deadline"`
	MealNight *string `json:"meal_night_deadline"`
}

// SettingService manages the booking deadline table.
type SettingService interface {
	DeadlineSource
	UpdateDeadlines(ctx context.Context, req UpdateDeadlinesRequest) (models.Deadlines, error)
	// DisableDeadlines moves every deadline to the end of the day.
	DisableDeadlines(ctx context.Context) (models.Deadlines, error)
	// ResetDeadlines drops the stored overrides so the configured table applies again.
	ResetDeadlines(ctx context.Context) (models.Deadlines, error)
}

type settingService struct {
	settingRepo repositories.SettingRepository
	defaults    models.Deadlines
}

// NewSettingService creates a new instance of SettingService. defaults is the
// configured deadline table; rows in system_settings are operator overrides
// written through UpdateDeadlines and win key by key.
func NewSettingService(settingRepo repositories.SettingRepository, defaults models.Deadlines) SettingService {
	return &settingService{settingRepo: settingRepo, defaults: defaults}
}

func (s *settingService) Deadlines(ctx context.Context) (models.Deadlines, error) {
	values, err := s.settingRepo.GetValues(ctx, deadlineKeys)
	if err != nil {
		return models.Deadlines{}, fmt.Errorf("failed to read deadline settings: %w", err)
	}
	return s.defaults.WithOverrides(values), nil
}

func (s *settingService) UpdateDeadlines(ctx context.Context, req UpdateDeadlinesRequest) (models.Deadlines, error) {
	updates := map[string]string{}
	for key, v := range map[string]*string{
		models.SettingBusDayDeadline:    req.BusDay,
		models.SettingBusNightDeadline:  req.BusNight,
		models.SettingMealDayDeadline:   req.MealDay,
		models.SettingMealNightDeadline: req.MealNight,
	} {
		if v == nil {
			continue
		}
		if !utils.IsValidClock(*v) {
			return models.Deadlines{}, fmt.Errorf("%w: %s=%q", ErrInvalidDeadline, key, *v)
		}
		updates[key] = *v
	}
	if len(updates) > 0 {
		if err := s.settingRepo.Upsert(ctx, updates); err != nil {
			return models.Deadlines{}, fmt.Errorf("failed to store deadline settings: %w", err)
		}
		utils.LogInfo("Booking deadlines updated", map[string]interface{}{"changes": updates})
	}
	return s.Deadlines(ctx)
}

func (s *settingService) DisableDeadlines(ctx context.Context) (models.Deadlines, error) {
	end := models.EndOfDayDeadline
	return s.UpdateDeadlines(ctx, UpdateDeadlinesRequest{BusDay: &end, BusNight: &end, MealDay: &end, MealNight: &end})
}

func (s *settingService) ResetDeadlines(ctx context.Context) (models.Deadlines, error) {
	n, err := s.settingRepo.Delete(ctx, deadlineKeys)
	if err != nil {
		return models.Deadlines{}, fmt.Errorf("failed to clear deadline settings: %w", err)
	}
	utils.LogInfo("Booking deadline overrides cleared", map[string]interface{}{"removed": n})
	return s.Deadlines(ctx)
}
