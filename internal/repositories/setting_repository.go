package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// SettingRepository reads and writes system_settings key/value pairs.
type SettingRepository interface {
	// GetValues returns the non-null values stored for keys. Missing keys are absent from the map.
	GetValues(ctx context.Context, keys []string) (map[string]string, error)
	// Upsert stores every key/value pair in one transaction.
	Upsert(ctx context.Context, values map[string]string) error
	// Delete removes keys and returns how many rows existed.
	Delete(ctx context.Context, keys []string) (int64, error)
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT setting_key, setting_value FROM system_settings
		 WHERE setting_key = ANY($1) AND setting_value IS NOT NULL`,
		pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	values := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settings: %v", ErrDatabaseError, err)
	}
	return values, nil
}

func (r *settingRepository) Upsert(ctx context.Context, values map[string]string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for k, v := range values {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO system_settings (setting_key, setting_value, updated_at)
				 VALUES ($1, $2, NOW())
				 ON CONFLICT (setting_key)
				 DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`,
				k, v)
			if err != nil {
				return fmt.Errorf("%w: upserting setting %s: %v", ErrDatabaseError, k, err)
			}
		}
		return nil
	})
}

func (r *settingRepository) Delete(ctx context.Context, keys []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM system_settings WHERE setting_key = ANY($1)`, pq.Array(keys))
	if err != nil {
		return 0, fmt.Errorf("%w: deleting settings: %v", ErrDatabaseError, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: deleting settings: %v", ErrDatabaseError, err)
	}
	return n, nil
}
