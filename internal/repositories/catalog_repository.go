package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shuttle_booking_backend/internal/models"
)

// CatalogRepository reads static reference data. Only active rows are returned,
// in insertion order.
type CatalogRepository interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListSchedules(ctx context.Context, routeID int64, shift models.ShiftType) ([]models.Schedule, error)
	GetSchedule(ctx context.Context, scheduleID int64) (*models.Schedule, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, restaurantID int64) (*models.Restaurant, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	query := `SELECT id, route_code, route_name_zh, route_name_en, route_name_vi,
	                 COALESCE(description_zh, ''), COALESCE(description_en, ''), COALESCE(description_vi, ''), is_active
	          FROM bus_routes WHERE is_active = TRUE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying routes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Code, &rt.Name.Zh, &rt.Name.En, &rt.Name.Vi,
			&rt.Description.Zh, &rt.Description.En, &rt.Description.Vi, &rt.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning route: %v", ErrDatabaseError, err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating route rows: %v", ErrDatabaseError, err)
	}
	return routes, nil
}

const selectScheduleFields = `
	bs.id, bs.route_id, bs.shift_type, to_char(bs.departure_time, 'HH24:MI'),
	COALESCE(bs.schedule_name_zh, ''), COALESCE(bs.schedule_name_en, ''), COALESCE(bs.schedule_name_vi, ''),
	br.route_name_zh, br.route_name_en, br.route_name_vi, bs.seat_limit, bs.is_active
	FROM bus_schedules bs
	JOIN bus_routes br ON bs.route_id = br.id
`

func scanSchedule(row scanner) (*models.Schedule, error) {
	var s models.Schedule
	var shift string
	err := row.Scan(&s.ID, &s.RouteID, &shift, &s.DepartureTime,
		&s.Label.Zh, &s.Label.En, &s.Label.Vi,
		&s.RouteName.Zh, &s.RouteName.En, &s.RouteName.Vi, &s.SeatLimit, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning schedule: %v", ErrDatabaseError, err)
	}
	s.ShiftType = models.ShiftType(shift)
	return &s, nil
}

func (r *catalogRepository) ListSchedules(ctx context.Context, routeID int64, shift models.ShiftType) ([]models.Schedule, error) {
	query := `SELECT ` + selectScheduleFields + `
	          WHERE bs.route_id = $1 AND bs.shift_type = $2 AND bs.is_active = TRUE
	          ORDER BY bs.id`
	rows, err := r.db.QueryContext(ctx, query, routeID, string(shift))
	if err != nil {
		return nil, fmt.Errorf("%w: querying schedules: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating schedule rows: %v", ErrDatabaseError, err)
	}
	return schedules, nil
}

func (r *catalogRepository) GetSchedule(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	query := `SELECT ` + selectScheduleFields + ` WHERE bs.id = $1 AND bs.is_active = TRUE AND br.is_active = TRUE`
	return scanSchedule(r.db.QueryRowContext(ctx, query, scheduleID))
}

const selectRestaurantFields = `id, floor, name_zh, name_en, name_vi, type, has_daily_menu, is_active FROM restaurants`

func scanRestaurant(row scanner) (*models.Restaurant, error) {
	var rs models.Restaurant
	err := row.Scan(&rs.ID, &rs.Floor, &rs.Name.Zh, &rs.Name.En, &rs.Name.Vi, &rs.Type, &rs.HasDailyMenu, &rs.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning restaurant: %v", ErrDatabaseError, err)
	}
	return &rs, nil
}

func (r *catalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectRestaurantFields+` WHERE is_active = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying restaurants: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		rs, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating restaurant rows: %v", ErrDatabaseError, err)
	}
	return restaurants, nil
}

func (r *catalogRepository) GetRestaurant(ctx context.Context, restaurantID int64) (*models.Restaurant, error) {
	return scanRestaurant(r.db.QueryRowContext(ctx, `SELECT `+selectRestaurantFields+` WHERE id = $1 AND is_active = TRUE`, restaurantID))
}
