package services

import (
	"context"
	"fmt"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
)

// CatalogService exposes the bookable routes, schedules and restaurants.
type CatalogService interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListSchedules(ctx context.Context, routeID int64, shift models.ShiftType) ([]models.Schedule, error)
	// ListRestaurantsByFloor groups active restaurants by floor, floors in the
	// order they are first seen.
	ListRestaurantsByFloor(ctx context.Context) ([]models.FloorGroup, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	routes, err := s.catalogRepo.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

func (s *catalogService) ListSchedules(ctx context.Context, routeID int64, shift models.ShiftType) ([]models.Schedule, error) {
	schedules, err := s.catalogRepo.ListSchedules(ctx, routeID, shift)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules of route %d: %w", routeID, err)
	}
	return schedules, nil
}

func (s *catalogService) ListRestaurantsByFloor(ctx context.Context) ([]models.FloorGroup, error) {
	restaurants, err := s.catalogRepo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return groupByFloor(restaurants), nil
}

func groupByFloor(restaurants []models.Restaurant) []models.FloorGroup {
	groups := []models.FloorGroup{}
	index := map[string]int{}
	for _, r := range restaurants {
		i, ok := index[r.Floor]
		if !ok {
			i = len(groups)
			index[r.Floor] = i
			groups = append(groups, models.FloorGroup{Floor: r.Floor})
		}
		groups[i].Restaurants = append(groups[i].Restaurants, r)
	}
	return groups
}
