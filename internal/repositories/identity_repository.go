package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/models"
)

// IdentityRepository maps chat identities to employees.
type IdentityRepository interface {
	// Bind links chatIdentity to the active employee with employeeCode, creating or
	// overwriting the binding and refreshing bound_at. ErrNotFound if no such employee.
	Bind(ctx context.Context, chatIdentity, employeeCode string) (*models.EmployeeSummary, error)
	// Resolve returns the active employee bound to chatIdentity, or ErrNotFound.
	Resolve(ctx context.Context, chatIdentity string) (*models.EmployeeSummary, error)
}

type identityRepository struct {
	db *sql.DB
}

// NewIdentityRepository creates a new instance of IdentityRepository.
func NewIdentityRepository(db *sql.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Bind(ctx context.Context, chatIdentity, employeeCode string) (*models.EmployeeSummary, error) {
	var summary models.EmployeeSummary
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var shift, lang string
		err := tx.QueryRowContext(ctx,
			`SELECT id, employee_id, name, shift_type, preferred_language
			 FROM employees WHERE employee_id = $1 AND status = $2
			 FOR SHARE`,
			employeeCode, models.EmployeeStatusActive,
		).Scan(&summary.ID, &summary.Code, &summary.Name, &shift, &lang)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: looking up employee %s: %v", ErrDatabaseError, employeeCode, err)
		}
		summary.ShiftType = models.ShiftType(shift)
		summary.PreferredLanguage = models.Language(lang)

		_, err = tx.ExecContext(ctx,
			`INSERT INTO line_users (line_user_id, employee_id, is_bound, bound_at)
			 VALUES ($1, $2, TRUE, NOW())
			 ON CONFLICT (line_user_id)
			 DO UPDATE SET employee_id = EXCLUDED.employee_id, is_bound = TRUE, bound_at = EXCLUDED.bound_at`,
			chatIdentity, summary.ID)
		if err != nil {
			return fmt.Errorf("%w: binding chat identity: %v", ErrDatabaseError, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *identityRepository) Resolve(ctx context.Context, chatIdentity string) (*models.EmployeeSummary, error) {
	query := `SELECT e.id, e.employee_id, e.name, e.shift_type, e.preferred_language,
	                 d.dept_name_zh, d.dept_name_en, d.dept_name_vi
	          FROM employees e
	          JOIN line_users lu ON e.id = lu.employee_id
	          LEFT JOIN departments d ON e.department_id = d.id
	          WHERE lu.line_user_id = $1 AND lu.is_bound = TRUE AND e.status = $2`

	var s models.EmployeeSummary
	var shift, lang string
	var deptZh, deptEn, deptVi sql.NullString
	err := r.db.QueryRowContext(ctx, query, chatIdentity, models.EmployeeStatusActive).
		Scan(&s.ID, &s.Code, &s.Name, &shift, &lang, &deptZh, &deptEn, &deptVi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: resolving chat identity: %v", ErrDatabaseError, err)
	}
	s.ShiftType = models.ShiftType(shift)
	s.PreferredLanguage = models.Language(lang)
	if deptZh.Valid {
		s.Department = &models.LocalizedText{Zh: deptZh.String, En: deptEn.String, Vi: deptVi.String}
	}
	return &s, nil
}
