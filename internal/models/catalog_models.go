package models

import "time"

// Route is a shuttle line.
type Route struct {
	ID          int64         `json:"id" db:"id"`
	Code        string        `json:"route_code" db:"route_code"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	IsActive    bool          `json:"is_active" db:"is_active"`
}

// Schedule is one departure offered on a route for a shift.
type Schedule struct {
	ID            int64         `json:"id" db:"id"`
	RouteID       int64         `json:"route_id" db:"route_id"`
	ShiftType     ShiftType     `json:"shift_type" db:"shift_type"`
	DepartureTime string        `json:"departure_time" db:"departure_time"` // HH:MM
	Label         LocalizedText `json:"label"`
	RouteName     LocalizedText `json:"route_name"`
	SeatLimit     int           `json:"seat_limit" db:"seat_limit"`
	IsActive      bool          `json:"is_active" db:"is_active"`
}

// Restaurant is a meal pickup location.
type Restaurant struct {
	ID           int64         `json:"id" db:"id"`
	Floor        string        `json:"floor" db:"floor"`
	Name         LocalizedText `json:"name"`
	Type         string        `json:"type" db:"type"` // bento, noodle, light
	HasDailyMenu bool          `json:"has_daily_menu" db:"has_daily_menu"`
	IsActive     bool          `json:"is_active" db:"is_active"`
}

// FloorGroup is the restaurants of one floor, in insertion order.
type FloorGroup struct {
	Floor       string       `json:"floor"`
	Restaurants []Restaurant `json:"restaurants"`
}

// IDs returns the restaurant ids of the group.
func (g FloorGroup) IDs() []int64 {
	ids := make([]int64, 0, len(g.Restaurants))
	for _, r := range g.Restaurants {
		ids = append(ids, r.ID)
	}
	return ids
}

// DailyMenu is stored for restaurants with a rotating menu. Booking logic does not read it.
type DailyMenu struct {
	ID           int64     `json:"id" db:"id"`
	RestaurantID int64     `json:"restaurant_id" db:"restaurant_id"`
	MenuDate     time.Time `json:"menu_date" db:"menu_date"`
	IsAvailable  bool      `json:"is_available" db:"is_available"`
}
