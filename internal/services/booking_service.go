package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/pkg/utils"
)

// --- Booking Errors ---
var (
	// ErrPersistence is returned when the ledger could not be read or written.
	ErrPersistence = errors.New("booking storage failed")
	// ErrBookingConflict is returned when a concurrent booking for the same
	// employee, kind and day won. It is also an ErrPersistence.
	ErrBookingConflict = fmt.Errorf("%w: conflicting active booking", ErrPersistence)
	// ErrInvalidSelection is returned when the schedule or restaurant does not exist,
	// is inactive, or belongs to another shift.
	ErrInvalidSelection = errors.New("selection is not available")
)

// BookingService is the booking ledger as seen by the bot and the admin API.
type BookingService interface {
	// Create admits the booking made at the instant at, then atomically cancels the
	// employee's active booking of kind for the day of at and records the new one.
	Create(ctx context.Context, employee *models.EmployeeSummary, kind models.BookingKind, selectionID int64, at time.Time) (int64, error)
	// Cancel cancels the active booking of kind for date. A zero count means there
	// was nothing to cancel.
	Cancel(ctx context.Context, employeeID int64, date time.Time, kind models.BookingKind) (int64, error)
	// ViewToday lists the employee's active bookings for date.
	ViewToday(ctx context.Context, employeeID int64, date time.Time) ([]models.BookingSummary, error)
	// Roster lists every active booking for date.
	Roster(ctx context.Context, date time.Time) ([]models.RosterEntry, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	catalogRepo repositories.CatalogRepository
	admission   AdmissionPolicy
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	catalogRepo repositories.CatalogRepository,
	admission AdmissionPolicy,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		admission:   admission,
	}
}

func (s *bookingService) Create(ctx context.Context, employee *models.EmployeeSummary, kind models.BookingKind, selectionID int64, at time.Time) (int64, error) {
	if err := s.admission.Admit(ctx, employee.ShiftType, kind, at); err != nil {
		return 0, err
	}
	if err := s.validateSelection(ctx, employee, kind, selectionID); err != nil {
		return 0, err
	}

	date := models.BookingDate(at)
	id, err := s.bookingRepo.Replace(ctx, kind, employee.ID, selectionID, date)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return 0, fmt.Errorf("%w: %v", ErrBookingConflict, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	utils.LogInfo("Booking created", map[string]interface{}{
		"kind": kind, "employee_id": employee.Code, "selection_id": selectionID,
		"date": date.Format(models.DateLayout), "booking_id": id,
	})
	return id, nil
}

func (s *bookingService) validateSelection(ctx context.Context, employee *models.EmployeeSummary, kind models.BookingKind, selectionID int64) error {
	switch kind {
	case models.BookingKindBus:
		schedule, err := s.catalogRepo.GetSchedule(ctx, selectionID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: schedule %d", ErrInvalidSelection, selectionID)
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if schedule.ShiftType != employee.ShiftType {
			return fmt.Errorf("%w: schedule %d is for the %s shift", ErrInvalidSelection, selectionID, schedule.ShiftType)
		}
	case models.BookingKindMeal:
		if _, err := s.catalogRepo.GetRestaurant(ctx, selectionID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: restaurant %d", ErrInvalidSelection, selectionID)
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	default:
		return fmt.Errorf("%w: unknown booking kind %q", ErrAdmissionMisconfigured, kind)
	}
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, employeeID int64, date time.Time, kind models.BookingKind) (int64, error) {
	if _, err := models.ParseBookingKind(string(kind)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	n, err := s.bookingRepo.Cancel(ctx, kind, employeeID, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if n > 0 {
		utils.LogInfo("Booking cancelled", map[string]interface{}{
			"kind": kind, "employee": employeeID, "date": date.Format(models.DateLayout), "rows": n,
		})
	}
	return n, nil
}

func (s *bookingService) ViewToday(ctx context.Context, employeeID int64, date time.Time) ([]models.BookingSummary, error) {
	bookings, err := s.bookingRepo.ListActive(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return bookings, nil
}

func (s *bookingService) Roster(ctx context.Context, date time.Time) ([]models.RosterEntry, error) {
	entries, err := s.bookingRepo.ListRoster(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return entries, nil
}
