package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
)

func TestCreateReplacesActiveBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")

	f.at(8, 10, 0)
	first, err := f.bookings.Create(ctx, emp, models.BookingKindBus, 1, f.clock)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	f.at(8, 20, 0)
	second, err := f.bookings.Create(ctx, emp, models.BookingKindBus, 2, f.clock)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if first == second {
		t.Fatalf("expected a new row, got the same id %d", first)
	}

	active := f.ledger.activeRows(models.BookingKindBus, emp.ID, f.today().Format(models.DateLayout))
	if len(active) != 1 || active[0].selectionID != 2 {
		t.Fatalf("expected only schedule 2 to be active, got %+v", active)
	}
	if f.ledger.rowCount() != 2 {
		t.Errorf("the replaced booking should stay in the ledger as cancelled")
	}

	view, err := f.bookings.ViewToday(ctx, emp.ID, f.today())
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 1 || view[0].ReferenceID != 2 || view[0].DepartureTime != "19:30" {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestBusAndMealAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")
	f.at(8, 30, 0)

	if _, err := f.bookings.Create(ctx, emp, models.BookingKindBus, 1, f.clock); err != nil {
		t.Fatal(err)
	}
	if _, err := f.bookings.Create(ctx, emp, models.BookingKindMeal, 3, f.clock); err != nil {
		t.Fatal(err)
	}
	view, _ := f.bookings.ViewToday(ctx, emp.ID, f.today())
	if len(view) != 2 {
		t.Fatalf("expected one bus and one meal booking, got %d", len(view))
	}
	if view[0].Kind != models.BookingKindBus || view[1].Kind != models.BookingKindMeal {
		t.Errorf("expected bus first, got %s then %s", view[0].Kind, view[1].Kind)
	}
}

func TestCreateDeniedAfterDeadlineLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-01657") // night shift, bus deadline 09:00
	f.at(10, 0, 0)

	_, err := f.bookings.Create(ctx, emp, models.BookingKindBus, 3, f.clock)
	var denied *DeniedError
	if !errors.As(err, &denied) || denied.Deadline != "09:00" {
		t.Fatalf("expected denial with deadline 09:00, got %v", err)
	}
	if f.ledger.rowCount() != 0 {
		t.Errorf("a denied booking must not write to the ledger")
	}
}

func TestCreateAdmitsAndDatesFromTheSameInstant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849") // day shift, meal deadline 09:00

	// The service clock is irrelevant: only the instant passed in counts.
	f.at(23, 59, 59)
	nextMorning := time.Date(2025, 1, 16, 8, 30, 0, 0, time.UTC)
	if _, err := f.bookings.Create(ctx, emp, models.BookingKindMeal, 3, nextMorning); err != nil {
		t.Fatalf("08:30 booking should be admitted, got %v", err)
	}
	if got := f.ledger.activeRows(models.BookingKindMeal, emp.ID, "2025-01-16"); len(got) != 1 {
		t.Fatalf("expected the booking under 2025-01-16, got %+v", got)
	}
	if got := f.ledger.activeRows(models.BookingKindMeal, emp.ID, "2025-01-15"); len(got) != 0 {
		t.Errorf("nothing should be written under the previous day, got %+v", got)
	}

	f.at(8, 0, 0)
	late := time.Date(2025, 1, 15, 9, 0, 1, 0, time.UTC)
	if _, err := f.bookings.Create(ctx, emp, models.BookingKindMeal, 3, late); !errors.Is(err, ErrAdmissionDenied) {
		t.Errorf("09:00:01 should be denied whatever the service clock says, got %v", err)
	}
}

func TestCreateRejectsInvalidSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")

	tests := []struct {
		name      string
		kind      models.BookingKind
		selection int64
	}{
		{"unknown schedule", models.BookingKindBus, 99},
		{"schedule of another shift", models.BookingKindBus, 3},
		{"unknown restaurant", models.BookingKindMeal, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bookings.Create(ctx, emp, tt.kind, tt.selection, f.clock)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("got %v, want ErrInvalidSelection", err)
			}
		})
	}
	if f.ledger.rowCount() != 0 {
		t.Errorf("rejected selections must not write to the ledger")
	}
}

func TestCreateStorageErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")

	f.ledger.failInsert = errStorageDown
	_, err := f.bookings.Create(ctx, emp, models.BookingKindBus, 1, f.clock)
	if !errors.Is(err, ErrPersistence) || errors.Is(err, ErrBookingConflict) {
		t.Errorf("storage failure: got %v, want plain ErrPersistence", err)
	}

	f.ledger.failInsert = repositories.ErrDuplicateKey
	_, err = f.bookings.Create(ctx, emp, models.BookingKindBus, 1, f.clock)
	if !errors.Is(err, ErrBookingConflict) || !errors.Is(err, ErrPersistence) {
		t.Errorf("unique violation: got %v, want ErrBookingConflict", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")

	if _, err := f.bookings.Create(ctx, emp, models.BookingKindMeal, 1, f.clock); err != nil {
		t.Fatal(err)
	}
	n, err := f.bookings.Cancel(ctx, emp.ID, f.today(), models.BookingKindMeal)
	if err != nil || n != 1 {
		t.Fatalf("first cancel = %d, %v; want 1, nil", n, err)
	}
	n, err = f.bookings.Cancel(ctx, emp.ID, f.today(), models.BookingKindMeal)
	if err != nil || n != 0 {
		t.Fatalf("second cancel = %d, %v; want 0, nil", n, err)
	}
	if _, err := f.bookings.Cancel(ctx, emp.ID, f.today(), models.BookingKind("taxi")); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("unknown kind: got %v, want ErrInvalidSelection", err)
	}
}

func TestConcurrentCreateLeavesOneActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	emp := f.employee("IGA1-02849")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			schedule := int64(1 + i%2)
			if _, err := f.bookings.Create(ctx, emp, models.BookingKindBus, schedule, f.clock); err != nil {
				t.Errorf("create %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	active := f.ledger.activeRows(models.BookingKindBus, emp.ID, f.today().Format(models.DateLayout))
	if len(active) != 1 {
		t.Fatalf("expected exactly one active booking, got %d", len(active))
	}
	if f.ledger.rowCount() != 20 {
		t.Errorf("expected 20 ledger rows, got %d", f.ledger.rowCount())
	}
}

func TestRosterListsEveryEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.at(8, 0, 0)

	if _, err := f.bookings.Create(ctx, f.employee("IGA1-02849"), models.BookingKindBus, 4, f.clock); err != nil {
		t.Fatal(err)
	}
	if _, err := f.bookings.Create(ctx, f.employee("IGA1-01657"), models.BookingKindBus, 3, f.clock); err != nil {
		t.Fatal(err)
	}
	entries, err := f.bookings.Roster(ctx, f.today())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 roster entries, got %d", len(entries))
	}
}
