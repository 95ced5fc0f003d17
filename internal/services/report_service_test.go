package services

import (
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"shuttle_booking_backend/internal/models"
)

func TestExportRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.bookings.Create(ctx, f.employee("IGA1-02849"), models.BookingKindBus, 1, f.clock); err != nil {
		t.Fatal(err)
	}
	if _, err := f.bookings.Create(ctx, f.employee("IGA1-02849"), models.BookingKindMeal, 3, f.clock); err != nil {
		t.Fatal(err)
	}

	buf, name, err := NewReportService(f.bookings).ExportRoster(ctx, f.today())
	if err != nil {
		t.Fatal(err)
	}
	if name != "roster_2025-01-15.xlsx" {
		t.Errorf("file name = %q", name)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer wb.Close()

	busRows, err := wb.GetRows(busSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(busRows) != 2 || busRows[1][0] != "平鎮線" || busRows[1][1] != "17:30" || busRows[1][3] != "IGA1-02849" {
		t.Errorf("unexpected bus sheet %v", busRows)
	}
	mealRows, err := wb.GetRows(mealSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(mealRows) != 2 || mealRows[1][0] != "B1" || mealRows[1][1] != "輕食" {
		t.Errorf("unexpected meal sheet %v", mealRows)
	}
}
