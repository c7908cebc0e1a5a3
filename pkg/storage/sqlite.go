package storage

import (
	"context"
	"fmt"

	"spacex_dash/models"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteSource читает ту же таблицу spacex_launches из файла SQLite.
type SQLiteSource struct {
	Path  string
	Sites []string
}

// LoadLaunches открывает файл, выбирает строки и сразу закрывает соединение:
// датасет читается один раз при старте.
func (s SQLiteSource) LoadLaunches(ctx context.Context) ([]models.LaunchRecord, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite %s: %w", s.Path, err)
	}
	defer db.Close()

	query := `SELECT flight_number, launch_site, payload_mass_kg,
                     COALESCE(booster_version, '') AS booster_version,
                     booster_version_category, class
              FROM spacex_launches`
	var args []any
	if len(s.Sites) > 0 {
		query, args, err = sqlx.In(query+` WHERE launch_site IN (?)`, s.Sites)
		if err != nil {
			return nil, fmt.Errorf("expanding site filter: %w", err)
		}
		query = db.Rebind(query)
	}
	query += ` ORDER BY flight_number`

	var records []models.LaunchRecord
	if err := db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("selecting launches: %w", err)
	}
	for _, rec := range records {
		if rec.Class != models.OutcomeFailure && rec.Class != models.OutcomeSuccess {
			return nil, fmt.Errorf("flight %d: %w in class: %d", rec.FlightNumber, ErrInvalidValue, rec.Class)
		}
	}
	return records, nil
}
