package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

// --- Report Errors ---
var (
	ErrExportGenerateFail = errors.New("failed to generate roster workbook")
)

const (
	busSheet  = "Bus"
	mealSheet = "Meal"
)

// ReportService builds the daily booking roster for the admin API.
type ReportService interface {
	Roster(ctx context.Context, date time.Time) ([]models.RosterEntry, error)
	// ExportRoster renders the roster as an .xlsx workbook with one sheet per
	// booking kind and returns it with a suggested file name.
	ExportRoster(ctx context.Context, date time.Time) (*bytes.Buffer, string, error)
}

type reportService struct {
	bookings BookingService
}

// NewReportService creates a new instance of ReportService.
func NewReportService(bookings BookingService) ReportService {
	return &reportService{bookings: bookings}
}

func (s *reportService) Roster(ctx context.Context, date time.Time) ([]models.RosterEntry, error) {
	return s.bookings.Roster(ctx, date)
}

func (s *reportService) ExportRoster(ctx context.Context, date time.Time) (*bytes.Buffer, string, error) {
	entries, err := s.bookings.Roster(ctx, date)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", busSheet); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}
	if _, err := f.NewSheet(mealSheet); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	busHeader := []interface{}{"Route", "Departure", "Schedule", "Employee ID", "Name"}
	mealHeader := []interface{}{"Floor", "Restaurant", "Employee ID", "Name"}
	if err := writeRow(f, busSheet, 1, busHeader); err != nil {
		return nil, "", err
	}
	if err := writeRow(f, mealSheet, 1, mealHeader); err != nil {
		return nil, "", err
	}
	f.SetCellStyle(busSheet, "A1", cellName(len(busHeader), 1), headerStyle)
	f.SetCellStyle(mealSheet, "A1", cellName(len(mealHeader), 1), headerStyle)
	f.SetColWidth(busSheet, "A", "E", 18)
	f.SetColWidth(mealSheet, "A", "D", 18)

	busRow, mealRow := 2, 2
	for _, e := range entries {
		switch e.Kind {
		case models.BookingKindBus:
			err = writeRow(f, busSheet, busRow, []interface{}{e.Place.Zh, e.DepartureTime, e.Detail.Zh, e.EmployeeCode, e.EmployeeName})
			busRow++
		case models.BookingKindMeal:
			err = writeRow(f, mealSheet, mealRow, []interface{}{e.Floor, e.Place.Zh, e.EmployeeCode, e.EmployeeName})
			mealRow++
		}
		if err != nil {
			return nil, "", err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		utils.LogError(err, "Failed to write roster workbook")
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("roster_%s.xlsx", date.Format(models.DateLayout)), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
