package models

import (
	"fmt"
	"time"
)

// BookingKind is one of the two bookable resource categories.
type BookingKind string

const (
	BookingKindBus  BookingKind = "bus"
	BookingKindMeal BookingKind = "meal"
)

// ParseBookingKind validates a wire value such as "bus".
func ParseBookingKind(s string) (BookingKind, error) {
	switch BookingKind(s) {
	case BookingKindBus, BookingKindMeal:
		return BookingKind(s), nil
	default:
		return "", fmt.Errorf("unknown booking kind %q", s)
	}
}

// BookingStatus defines the type for ledger row statuses.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DateLayout is the wire and storage layout of a booking date.
const DateLayout = "2006-01-02"

// BookingDate truncates t to its calendar date in t's own location.
func BookingDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BusReservation is one employee's claim on one schedule for one date.
type BusReservation struct {
	ID              int64         `json:"id" db:"id"`
	EmployeeID      int64         `json:"employee_id" db:"employee_id"`
	ScheduleID      int64         `json:"schedule_id" db:"schedule_id"`
	ReservationDate time.Time     `json:"reservation_date" db:"reservation_date"`
	Status          BookingStatus `json:"status" db:"status"`
	ReservedAt      time.Time     `json:"reserved_at" db:"reserved_at"`
}

// MealOrder is one employee's meal claim for one date.
type MealOrder struct {
	ID           int64         `json:"id" db:"id"`
	EmployeeID   int64         `json:"employee_id" db:"employee_id"`
	RestaurantID int64         `json:"restaurant_id" db:"restaurant_id"`
	OrderDate    time.Time     `json:"order_date" db:"order_date"`
	Status       BookingStatus `json:"status" db:"status"`
	OrderedAt    time.Time     `json:"ordered_at" db:"ordered_at"`
}

// BookingSummary is one line of an employee's "today" view.
// For bus rows Place is the route name and Detail the schedule label;
// for meal rows Place is the restaurant name and Floor is set.
type BookingSummary struct {
	Kind          BookingKind   `json:"kind"`
	ReferenceID   int64         `json:"reference_id"` // schedule id or restaurant id
	Place         LocalizedText `json:"place"`
	Detail        LocalizedText `json:"detail"`
	DepartureTime string        `json:"departure_time,omitempty"`
	Floor         string        `json:"floor,omitempty"`
}

// RosterEntry is one active booking of a day, for the admin roster and export.
type RosterEntry struct {
	BookingSummary
	EmployeeCode string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}
