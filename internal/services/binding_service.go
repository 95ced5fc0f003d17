package services

import (
	"context"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/pkg/utils"
)

// --- Binding Errors ---
var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

// BindingService links chat identities to employee records.
type BindingService interface {
	// Bind links chatIdentity to the employee with employeeCode (matched upper-cased).
	// A later Bind for the same identity overwrites the earlier one.
	Bind(ctx context.Context, chatIdentity, employeeCode string) (*models.EmployeeSummary, error)
	// Resolve returns the bound employee, or nil when the identity is unbound.
	Resolve(ctx context.Context, chatIdentity string) (*models.EmployeeSummary, error)
}

type bindingService struct {
	identityRepo repositories.IdentityRepository
}

// NewBindingService creates a new instance of BindingService.
func NewBindingService(identityRepo repositories.IdentityRepository) BindingService {
	return &bindingService{identityRepo: identityRepo}
}

func (s *bindingService) Bind(ctx context.Context, chatIdentity, employeeCode string) (*models.EmployeeSummary, error) {
	code := utils.NormalizeEmployeeCode(employeeCode)
	if code == "" {
		return nil, fmt.Errorf("%w: empty employee code", ErrEmployeeNotFound)
	}
	summary, err := s.identityRepo.Bind(ctx, chatIdentity, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, code)
		}
		return nil, fmt.Errorf("%w: binding %s: %v", ErrPersistence, code, err)
	}
	utils.LogInfo("Chat identity bound", map[string]interface{}{"employee_id": summary.Code})
	return summary, nil
}

func (s *bindingService) Resolve(ctx context.Context, chatIdentity string) (*models.EmployeeSummary, error) {
	summary, err := s.identityRepo.Resolve(ctx, chatIdentity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve chat identity: %w", err)
	}
	return summary, nil
}
