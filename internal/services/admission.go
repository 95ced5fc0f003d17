package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

// --- Admission Errors ---
var (
	// ErrAdmissionDenied is returned when a booking is attempted after its deadline.
	ErrAdmissionDenied = errors.New("booking deadline has passed")
	// ErrAdmissionMisconfigured is returned for an unknown shift/kind pair or a
	// malformed deadline value.
	ErrAdmissionMisconfigured = errors.New("admission policy is misconfigured")
)

// Clock returns the current time in the booking timezone.
type Clock func() time.Time

// NewClock returns a Clock reading the wall clock in loc.
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// DeadlineFor returns the "HH:MM" deadline that applies to shift and kind.
func DeadlineFor(d models.Deadlines, shift models.ShiftType, kind models.BookingKind) (string, error) {
	switch {
	case kind == models.BookingKindBus && shift == models.ShiftDay:
		return d.BusDay, nil
	case kind == models.BookingKindBus && shift == models.ShiftNight:
		return d.BusNight, nil
	case kind == models.BookingKindMeal && shift == models.ShiftDay:
		return d.MealDay, nil
	case kind == models.BookingKindMeal && shift == models.ShiftNight:
		return d.MealNight, nil
	default:
		return "", fmt.Errorf("%w: no deadline for shift %q and kind %q", ErrAdmissionMisconfigured, shift, kind)
	}
}

// parseClock turns "HH:MM" into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	if !utils.IsValidClock(s) {
		return 0, fmt.Errorf("%w: malformed deadline %q", ErrAdmissionMisconfigured, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed deadline %q: %v", ErrAdmissionMisconfigured, s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// sinceMidnight is the wall-clock time of t as an offset from midnight.
func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// IsWithinWindow reports whether now is at or before the deadline for shift and kind.
// The deadline minute itself is admitted only at its first instant: 14:30:00 is
// inside a 14:30 deadline, 14:30:01 is not. now is compared in its own location.
func IsWithinWindow(d models.Deadlines, shift models.ShiftType, kind models.BookingKind, now time.Time) (bool, error) {
	raw, err := DeadlineFor(d, shift, kind)
	if err != nil {
		return false, err
	}
	limit, err := parseClock(raw)
	if err != nil {
		return false, err
	}
	return sinceMidnight(now) <= limit, nil
}

// DeadlineSource yields the deadline table in force right now.
type DeadlineSource interface {
	Deadlines(ctx context.Context) (models.Deadlines, error)
}

// AdmissionPolicy decides whether a booking may be made now.
type AdmissionPolicy interface {
	// Admit returns nil when shift may book kind at now, an error wrapping
	// ErrAdmissionDenied (with the deadline) when the window has closed, or
	// ErrAdmissionMisconfigured.
	Admit(ctx context.Context, shift models.ShiftType, kind models.BookingKind, now time.Time) error
}

type admissionPolicy struct {
	source DeadlineSource
}

// NewAdmissionPolicy creates an AdmissionPolicy that re-reads deadlines from source on every check.
func NewAdmissionPolicy(source DeadlineSource) AdmissionPolicy {
	return &admissionPolicy{source: source}
}

// DeniedError carries the deadline that closed the window.
type DeniedError struct {
	Deadline string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s (deadline %s)", ErrAdmissionDenied.Error(), e.Deadline)
}

// Unwrap lets errors.Is match ErrAdmissionDenied.
func (e *DeniedError) Unwrap() error { return ErrAdmissionDenied }

func (p *admissionPolicy) Admit(ctx context.Context, shift models.ShiftType, kind models.BookingKind, now time.Time) error {
	deadlines, err := p.source.Deadlines(ctx)
	if err != nil {
		return err
	}
	ok, err := IsWithinWindow(deadlines, shift, kind, now)
	if err != nil {
		return err
	}
	if !ok {
		deadline, _ := DeadlineFor(deadlines, shift, kind)
		return &DeniedError{Deadline: deadline}
	}
	return nil
}
