package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shuttle_booking_backend/internal/models"
)

// ledgerTable describes where a booking kind is stored.
type ledgerTable struct {
	table     string
	refColumn string
	dateCol   string
	lockSpace int
}

var ledgerTables = map[models.BookingKind]ledgerTable{
	models.BookingKindBus:  {table: "bus_reservations", refColumn: "schedule_id", dateCol: "reservation_date", lockSpace: 1},
	models.BookingKindMeal: {table: "meal_orders", refColumn: "restaurant_id", dateCol: "order_date", lockSpace: 2},
}

func ledgerFor(kind models.BookingKind) (ledgerTable, error) {
	t, ok := ledgerTables[kind]
	if !ok {
		return ledgerTable{}, fmt.Errorf("%w: unknown booking kind %q", ErrDatabaseError, kind)
	}
	return t, nil
}

// BookingRepository is the per-day ledger of bus reservations and meal orders.
type BookingRepository interface {
	// Replace cancels the employee's active row of kind for date and inserts a new
	// active row in the same transaction. It returns the new row id.
	Replace(ctx context.Context, kind models.BookingKind, employeeID, selectionID int64, date time.Time) (int64, error)
	// Cancel marks the employee's active rows of kind for date cancelled and
	// returns how many rows changed.
	Cancel(ctx context.Context, kind models.BookingKind, employeeID int64, date time.Time) (int64, error)
	// ListActive returns the employee's active bookings for date, bus first.
	ListActive(ctx context.Context, employeeID int64, date time.Time) ([]models.BookingSummary, error)
	// ListRoster returns every active booking for date.
	ListRoster(ctx context.Context, date time.Time) ([]models.RosterEntry, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// lockEmployee serializes ledger writes of one kind for one employee until the
// surrounding transaction ends.
func lockEmployee(ctx context.Context, tx SQLExecutor, t ledgerTable, employeeID int64) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, t.lockSpace, employeeID); err != nil {
		return fmt.Errorf("%w: acquiring ledger lock: %v", ErrDatabaseError, err)
	}
	return nil
}

func cancelActive(ctx context.Context, executor SQLExecutor, t ledgerTable, employeeID int64, date string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW()
	                      WHERE employee_id = $2 AND %s = $3::date AND status = $4`, t.table, t.dateCol)
	res, err := executor.ExecContext(ctx, query, models.BookingStatusCancelled, employeeID, date, models.BookingStatusActive)
	if err != nil {
		return 0, fmt.Errorf("%w: cancelling %s: %v", ErrDatabaseError, t.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reading affected rows: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *bookingRepository) Replace(ctx context.Context, kind models.BookingKind, employeeID, selectionID int64, date time.Time) (int64, error) {
	t, err := ledgerFor(kind)
	if err != nil {
		return 0, err
	}
	day := date.Format(models.DateLayout)

	var id int64
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockEmployee(ctx, tx, t, employeeID); err != nil {
			return err
		}
		if _, err := cancelActive(ctx, tx, t, employeeID, day); err != nil {
			return err
		}
		query := fmt.Sprintf(`INSERT INTO %s (employee_id, %s, %s, status)
		                      VALUES ($1, $2, $3::date, $4) RETURNING id`, t.table, t.refColumn, t.dateCol)
		err := tx.QueryRowContext(ctx, query, employeeID, selectionID, day, models.BookingStatusActive).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s for employee %d on %s", ErrDuplicateKey, t.table, employeeID, day)
			}
			return fmt.Errorf("%w: inserting into %s: %v", ErrDatabaseError, t.table, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, kind models.BookingKind, employeeID int64, date time.Time) (int64, error) {
	t, err := ledgerFor(kind)
	if err != nil {
		return 0, err
	}

	var n int64
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockEmployee(ctx, tx, t, employeeID); err != nil {
			return err
		}
		n, err = cancelActive(ctx, tx, t, employeeID, date.Format(models.DateLayout))
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// activeBookingsQuery yields one row per active booking: kind, reference id,
// place (3 langs), detail (3 langs), departure time, floor, employee code, employee name.
const activeBookingsQuery = `
	SELECT 'bus', bs.id,
	       br.route_name_zh, br.route_name_en, br.route_name_vi,
	       COALESCE(bs.schedule_name_zh, ''), COALESCE(bs.schedule_name_en, ''), COALESCE(bs.schedule_name_vi, ''),
	       to_char(bs.departure_time, 'HH24:MI'), '',
	       e.employee_id, e.name
	FROM bus_reservations b
	JOIN bus_schedules bs ON b.schedule_id = bs.id
	JOIN bus_routes br ON bs.route_id = br.id
	JOIN employees e ON b.employee_id = e.id
	WHERE b.reservation_date = $1::date AND b.status = 'active' %[1]s
	UNION ALL
	SELECT 'meal', r.id,
	       r.name_zh, r.name_en, r.name_vi,
	       '', '', '',
	       '', r.floor,
	       e.employee_id, e.name
	FROM meal_orders m
	JOIN restaurants r ON m.restaurant_id = r.id
	JOIN employees e ON m.employee_id = e.id
	WHERE m.order_date = $1::date AND m.status = 'active' %[2]s
	ORDER BY 1, 3, 9, 10, 11`

func (r *bookingRepository) queryActive(ctx context.Context, query string, args ...interface{}) ([]models.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.RosterEntry{}
	for rows.Next() {
		var e models.RosterEntry
		var kind string
		if err := rows.Scan(&kind, &e.ReferenceID,
			&e.Place.Zh, &e.Place.En, &e.Place.Vi,
			&e.Detail.Zh, &e.Detail.En, &e.Detail.Vi,
			&e.DepartureTime, &e.Floor, &e.EmployeeCode, &e.EmployeeName); err != nil {
			return nil, fmt.Errorf("%w: scanning active booking: %v", ErrDatabaseError, err)
		}
		e.Kind = models.BookingKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active bookings: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

func (r *bookingRepository) ListActive(ctx context.Context, employeeID int64, date time.Time) ([]models.BookingSummary, error) {
	query := fmt.Sprintf(activeBookingsQuery, "AND b.employee_id = $2", "AND m.employee_id = $2")
	entries, err := r.queryActive(ctx, query, date.Format(models.DateLayout), employeeID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.BookingSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, e.BookingSummary)
	}
	return summaries, nil
}

func (r *bookingRepository) ListRoster(ctx context.Context, date time.Time) ([]models.RosterEntry, error) {
	return r.queryActive(ctx, fmt.Sprintf(activeBookingsQuery, "", ""), date.Format(models.DateLayout))
}
