package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
)

// ErrNoMealOrder is returned when the employee has no active meal order for the day.
var ErrNoMealOrder = errors.New("no active meal order")

// VerificationService issues meal pickup tickets.
type VerificationService interface {
	// Ticket returns the pickup ticket for the employee's active meal order on date.
	Ticket(ctx context.Context, employee *models.EmployeeSummary, date time.Time) (*MealTicket, error)
	// TicketForCode resolves a verification code back to its ticket.
	TicketForCode(ctx context.Context, code string) (*MealTicket, error)
}

type verificationService struct {
	bookingRepo  repositories.BookingRepository
	employeeRepo repositories.EmployeeRepository
}

// NewVerificationService creates a new instance of VerificationService.
func NewVerificationService(bookingRepo repositories.BookingRepository, employeeRepo repositories.EmployeeRepository) VerificationService {
	return &verificationService{bookingRepo: bookingRepo, employeeRepo: employeeRepo}
}

func (s *verificationService) Ticket(ctx context.Context, employee *models.EmployeeSummary, date time.Time) (*MealTicket, error) {
	bookings, err := s.bookingRepo.ListActive(ctx, employee.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, b := range bookings {
		if b.Kind != models.BookingKindMeal {
			continue
		}
		return &MealTicket{
			EmployeeName: employee.Name,
			EmployeeCode: employee.Code,
			Restaurant:   b.Place,
			Floor:        b.Floor,
			Date:         date,
			Code:         GenerateVerificationCode(employee.Code, date),
		}, nil
	}
	return nil, ErrNoMealOrder
}

func (s *verificationService) TicketForCode(ctx context.Context, code string) (*MealTicket, error) {
	employeeCode, date, err := ParseVerificationCode(code)
	if err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if employee.Status != models.EmployeeStatusActive {
		return nil, fmt.Errorf("%w: %s is inactive", ErrEmployeeNotFound, employeeCode)
	}
	return s.Ticket(ctx, &models.EmployeeSummary{
		ID:        employee.ID,
		Code:      employee.Code,
		Name:      employee.Name,
		ShiftType: employee.ShiftType,
	}, date)
}
