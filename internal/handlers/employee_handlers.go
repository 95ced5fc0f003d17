package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

// EmployeeHandler manages employee records.
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

// ListEmployees returns every employee, active or not.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		utils.LogError(err, "ListEmployees: Error from employeeService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employees.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployee adds an employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeValidation), errors.Is(err, services.ErrUnsupportedLang):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrEmployeeExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Employee already exists.", err.Error()))
		default:
			utils.LogError(err, "CreateEmployee: Error from employeeService.Create")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// DeactivateEmployee stops an employee from binding and booking.
func (h *EmployeeHandler) DeactivateEmployee(c *gin.Context) {
	code := c.Param("code")
	if err := h.employeeService.Deactivate(c.Request.Context(), code); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", code))
			return
		}
		utils.LogError(err, "DeactivateEmployee: Error from employeeService.Deactivate")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate employee.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee '" + code + "' deactivated successfully"})
}
