package models

import "time"

// ShiftType is an employee's work schedule category.
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)

// IsValidShiftType checks if the provided string is a known shift type.
func IsValidShiftType(s string) bool {
	switch ShiftType(s) {
	case ShiftDay, ShiftNight:
		return true
	default:
		return false
	}
}

// Language is a supported display language code.
type Language string

const (
	LangZh Language = "zh"
	LangEn Language = "en"
	LangVi Language = "vi"
)

// DefaultLanguage is used for unbound users and unknown codes.
const DefaultLanguage = LangZh

// SupportedLanguages lists display languages in menu order.
var SupportedLanguages = []Language{LangZh, LangEn, LangVi}

// EmployeeStatus values.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// LocalizedText holds a value in every supported language.
type LocalizedText struct {
	Zh string `json:"zh"`
	En string `json:"en"`
	Vi string `json:"vi"`
}

// In returns the text for lang, falling back to Chinese.
func (t LocalizedText) In(lang Language) string {
	switch lang {
	case LangEn:
		return t.En
	case LangVi:
		return t.Vi
	default:
		return t.Zh
	}
}

// Department is an organisational unit an employee belongs to.
type Department struct {
	ID       int64         `json:"id" db:"id"`
	Code     string        `json:"dept_code" db:"dept_code"`
	Name     LocalizedText `json:"name"`
	IsActive bool          `json:"is_active" db:"is_active"`
}

// Employee is a staff member record. Code is the immutable employee number, e.g. IGA1-02849.
type Employee struct {
	ID                int64     `json:"id" db:"id"`
	Code              string    `json:"employee_id" db:"employee_id"`
	Name              string    `json:"name" db:"name"`
	DepartmentID      *int64    `json:"department_id,omitempty" db:"department_id"`
	ShiftType         ShiftType `json:"shift_type" db:"shift_type"`
	PreferredLanguage Language  `json:"preferred_language" db:"preferred_language"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeSummary is what the bot knows about a bound chat identity.
// It is always read fresh from storage.
type EmployeeSummary struct {
	ID                int64          `json:"id"`
	Code              string         `json:"employee_id"`
	Name              string         `json:"name"`
	ShiftType         ShiftType      `json:"shift_type"`
	PreferredLanguage Language       `json:"preferred_language"`
	Department        *LocalizedText `json:"department,omitempty"`
}

// IdentityBinding links one chat identity to one employee.
type IdentityBinding struct {
	ID           int64      `json:"id" db:"id"`
	ChatIdentity string     `json:"line_user_id" db:"line_user_id"`
	EmployeeID   int64      `json:"employee_id" db:"employee_id"`
	IsBound      bool       `json:"is_bound" db:"is_bound"`
	BoundAt      *time.Time `json:"bound_at,omitempty" db:"bound_at"`
}
