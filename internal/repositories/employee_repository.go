package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/models"
)

// EmployeeRepository defines employee record operations. Employees are created and
// deactivated administratively; the bot only reads them and updates the language.
type EmployeeRepository interface {
	GetByCode(ctx context.Context, code string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	Deactivate(ctx context.Context, code string) error
	UpdateLanguage(ctx context.Context, employeeID int64, lang models.Language) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const selectEmployeeFields = `id, employee_id, name, department_id, shift_type, preferred_language, status, created_at, updated_at`

func scanEmployee(row scanner) (*models.Employee, error) {
	var e models.Employee
	var deptID sql.NullInt64
	var shift, lang string
	err := row.Scan(&e.ID, &e.Code, &e.Name, &deptID, &shift, &lang, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
	}
	if deptID.Valid {
		e.DepartmentID = &deptID.Int64
	}
	e.ShiftType = models.ShiftType(shift)
	e.PreferredLanguage = models.Language(lang)
	return &e, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*models.Employee, error) {
	query := `SELECT ` + selectEmployeeFields + ` FROM employees WHERE employee_id = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, query, code))
}

func (r *employeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectEmployeeFields+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	return employees, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	query := `INSERT INTO employees (employee_id, name, department_id, shift_type, preferred_language, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		employee.Code, employee.Name, employee.DepartmentID, string(employee.ShiftType),
		string(employee.PreferredLanguage), employee.Status,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: employee %s", ErrDuplicateKey, employee.Code)
		}
		return nil, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees SET status = $1, updated_at = NOW() WHERE employee_id = $2`,
		models.EmployeeStatusInactive, code)
	if err != nil {
		return fmt.Errorf("%w: deactivating employee %s: %v", ErrDatabaseError, code, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) UpdateLanguage(ctx context.Context, employeeID int64, lang models.Language) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees SET preferred_language = $1, updated_at = NOW() WHERE id = $2`,
		string(lang), employeeID)
	if err != nil {
		return fmt.Errorf("%w: updating language of employee %d: %v", ErrDatabaseError, employeeID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
