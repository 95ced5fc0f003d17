package models

import "time"

// SystemSetting represents a key-value pair stored in system_settings.
type SystemSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"setting_key" db:"setting_key"`
	SettingValue *string   `json:"setting_value,omitempty" db:"setting_value"`
	Description  *string   `json:"description,omitempty" db:"description"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Deadline setting keys.
const (
	SettingBusDayDeadline    = "bus_day_deadline"
	SettingBusNightDeadline  = "bus_night_deadline"
	SettingMealDayDeadline   = "meal_day_deadline"
	SettingMealNightDeadline = "meal_night_deadline"
)

// EndOfDayDeadline is the value written when deadlines are disabled. Admission
// compares to the second, so 23:59:01 through 23:59:59 are still refused.
const EndOfDayDeadline = "23:59"

// Deadlines is the booking deadline table, wall-clock "HH:MM" values.
type Deadlines struct {
	BusDay    string `json:"bus_day_deadline" mapstructure:"bus_day"`
	BusNight  string `json:"bus_night_deadline" mapstructure:"bus_night"`
	MealDay   string `json:"meal_day_deadline" mapstructure:"meal_day"`
	MealNight string `json:"meal_night_deadline" mapstructure:"meal_night"`
}

// DefaultDeadlines returns the factory deadline table.
func DefaultDeadlines() Deadlines {
	return Deadlines{BusDay: "14:30", BusNight: "09:00", MealDay: "09:00", MealNight: "21:00"}
}

// ByKey returns the table as setting key -> value.
func (d Deadlines) ByKey() map[string]string {
	return map[string]string{
		SettingBusDayDeadline:    d.BusDay,
		SettingBusNightDeadline:  d.BusNight,
		SettingMealDayDeadline:   d.MealDay,
		SettingMealNightDeadline: d.MealNight,
	}
}

// WithOverrides returns a copy with any known keys of values applied.
func (d Deadlines) WithOverrides(values map[string]string) Deadlines {
	if v, ok := values[SettingBusDayDeadline]; ok {
		d.BusDay = v
	}
	if v, ok := values[SettingBusNightDeadline]; ok {
		d.BusNight = v
	}
	if v, ok := values[SettingMealDayDeadline]; ok {
		d.MealDay = v
	}
	if v, ok := values[SettingMealNightDeadline]; ok {
		d.MealNight = v
	}
	return d
}
