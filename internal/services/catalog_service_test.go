package services

import (
	"context"
	"testing"

	"shuttle_booking_backend/internal/models"
)

func TestGroupByFloorKeepsFirstSeenOrder(t *testing.T) {
	restaurants := []models.Restaurant{
		{ID: 1, Floor: "3F"},
		{ID: 2, Floor: "B1"},
		{ID: 3, Floor: "3F"},
		{ID: 4, Floor: "1F"},
	}
	groups := groupByFloor(restaurants)

	wantFloors := []string{"3F", "B1", "1F"}
	if len(groups) != len(wantFloors) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantFloors))
	}
	for i, g := range groups {
		if g.Floor != wantFloors[i] {
			t.Errorf("group %d floor = %s, want %s", i, g.Floor, wantFloors[i])
		}
	}
	if ids := groups[0].IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("3F ids = %v, want [1 3]", ids)
	}
}

func TestListSchedulesFiltersByShift(t *testing.T) {
	svc := NewCatalogService(newFakeCatalog())
	night, err := svc.ListSchedules(context.Background(), 1, models.ShiftNight)
	if err != nil {
		t.Fatal(err)
	}
	if len(night) != 1 || night[0].DepartureTime != "05:30" {
		t.Errorf("unexpected night schedules %+v", night)
	}
}
