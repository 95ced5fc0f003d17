package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"shuttle_booking_backend/internal/models"
)

var testDay = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*bookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &bookingRepository{db: db}, mock
}

func TestReplaceLocksCancelsAndInserts(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1::int, $2::int)`)).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bus_reservations SET status = $1`)).
		WithArgs("cancelled", 7, "2025-01-15", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bus_reservations (employee_id, schedule_id, reservation_date, status)`)).
		WithArgs(7, 3, "2025-01-15", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	id, err := repo.Replace(context.Background(), models.BookingKindBus, 7, 3, testDay)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceRollsBackOnInsertFailure(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicateKey},
		{"other failure", errors.New("connection reset"), ErrDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)

			mock.ExpectBegin()
			mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(2, 7).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(`UPDATE meal_orders`).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery(`INSERT INTO meal_orders`).WillReturnError(tt.dbErr)
			mock.ExpectRollback()

			_, err := repo.Replace(context.Background(), models.BookingKindMeal, 7, 1, testDay)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestReplaceUnknownKindTouchesNothing(t *testing.T) {
	repo, mock := newMock(t)
	if _, err := repo.Replace(context.Background(), models.BookingKind("taxi"), 7, 1, testDay); !errors.Is(err, ErrDatabaseError) {
		t.Errorf("got %v, want ErrDatabaseError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCancelReturnsAffectedRows(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(1, 7).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE bus_reservations`).
		WithArgs("cancelled", 7, "2025-01-15", "active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.Cancel(context.Background(), models.BookingKindBus, 7, testDay)
	if err != nil || n != 0 {
		t.Fatalf("Cancel = %d, %v; want 0, nil", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListActiveScansBothKinds(t *testing.T) {
	repo, mock := newMock(t)

	cols := []string{"kind", "id", "zh", "en", "vi", "dzh", "den", "dvi", "departure", "floor", "code", "name"}
	mock.ExpectQuery(`FROM bus_reservations b`).
		WithArgs("2025-01-15", 7).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("bus", 2, "平鎮線", "Pingzhen Route", "Tuyến Pingzhen", "第二班", "2nd", "Chuyến 2", "19:30", "", "IGA1-02849", "王小明").
			AddRow("meal", 3, "輕食", "Light Meal", "Đồ ăn nhẹ", "", "", "", "", "B1", "IGA1-02849", "王小明"))

	got, err := repo.ListActive(context.Background(), 7, testDay)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Kind != models.BookingKindBus || got[0].DepartureTime != "19:30" || got[0].Place.En != "Pingzhen Route" {
		t.Errorf("unexpected bus row %+v", got[0])
	}
	if got[1].Kind != models.BookingKindMeal || got[1].Floor != "B1" || got[1].ReferenceID != 3 {
		t.Errorf("unexpected meal row %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
