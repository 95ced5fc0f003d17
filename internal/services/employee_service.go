package services

import (
	"context"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/i18n"
	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/pkg/utils"
)

// --- Employee Errors ---
var (
	ErrEmployeeExists     = errors.New("employee already exists")
	ErrEmployeeValidation = errors.New("employee data validation error")
	ErrUnsupportedLang    = errors.New("unsupported language")
)

// CreateEmployeeRequest DTO
type CreateEmployeeRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	DepartmentID      *int64 `json:"department_id"`
	ShiftType         string `json:"shift_type" binding:"required"`
	PreferredLanguage string `json:"preferred_language"`
}

// EmployeeService manages employee records.
type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error)
	// Deactivate keeps the record but stops the employee from binding or booking.
	Deactivate(ctx context.Context, code string) error
	SetLanguage(ctx context.Context, employeeID int64, lang models.Language) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	code := utils.NormalizeEmployeeCode(req.EmployeeID)
	if !utils.LooksLikeEmployeeCode(code) {
		return nil, fmt.Errorf("%w: employee_id %q must be 10 characters with a dash, e.g. IGA1-02849", ErrEmployeeValidation, req.EmployeeID)
	}
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrEmployeeValidation)
	}
	if !models.IsValidShiftType(req.ShiftType) {
		return nil, fmt.Errorf("%w: shift_type must be day or night", ErrEmployeeValidation)
	}
	lang := models.DefaultLanguage
	if req.PreferredLanguage != "" {
		matched, ok := i18n.Match(req.PreferredLanguage)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLang, req.PreferredLanguage)
		}
		lang = matched
	}

	employee, err := s.employeeRepo.Create(ctx, &models.Employee{
		Code:              code,
		Name:              req.Name,
		DepartmentID:      req.DepartmentID,
		ShiftType:         models.ShiftType(req.ShiftType),
		PreferredLanguage: lang,
		Status:            models.EmployeeStatusActive,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, code)
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	utils.LogInfo("Employee created", map[string]interface{}{"employee_id": code, "shift_type": req.ShiftType})
	return employee, nil
}

func (s *employeeService) Deactivate(ctx context.Context, code string) error {
	code = utils.NormalizeEmployeeCode(code)
	if err := s.employeeRepo.Deactivate(ctx, code); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrEmployeeNotFound, code)
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	utils.LogInfo("Employee deactivated", map[string]interface{}{"employee_id": code})
	return nil
}

func (s *employeeService) SetLanguage(ctx context.Context, employeeID int64, lang models.Language) error {
	if err := s.employeeRepo.UpdateLanguage(ctx, employeeID, lang); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrEmployeeNotFound, employeeID)
		}
		return fmt.Errorf("failed to update language: %w", err)
	}
	return nil
}
