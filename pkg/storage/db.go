package storage

import (
	"context"
	"database/sql"
	"fmt"

	"spacex_dash/models"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// launchesQuery выбирает записи в порядке номеров полётов, как в исходной выгрузке.
const launchesQuery = `
               SELECT flight_number, launch_site, payload_mass_kg, booster_version,
                      booster_version_category, class
               FROM spacex_launches`

// DB читает запуски из таблицы spacex_launches в Postgres.
// Источник только читает данные: сервис ничего не пишет в базу.
type DB struct {
	Conn *sql.DB
	// Sites ограничивает выборку перечисленными площадками; пустой список — все площадки
	Sites []string
}

func NewDB(conn *sql.DB, sites []string) *DB {
	return &DB{Conn: conn, Sites: sites}
}

// LoadLaunches выполняет один SELECT и возвращает все строки.
func (db *DB) LoadLaunches(ctx context.Context) ([]models.LaunchRecord, error) {
	query := launchesQuery
	var args []any
	if len(db.Sites) > 0 {
		query += ` WHERE launch_site = ANY($1)`
		args = append(args, pq.Array(db.Sites))
	}
	query += ` ORDER BY flight_number`

	rows, err := db.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		logrus.Errorf("[DB ERROR] Не удалось выбрать запуски: %v", err)
		return nil, fmt.Errorf("querying spacex_launches: %w", err)
	}
	defer rows.Close()

	var records []models.LaunchRecord
	for rows.Next() {
		var rec models.LaunchRecord
		var booster sql.NullString
		if err := rows.Scan(
			&rec.FlightNumber,
			&rec.LaunchSite,
			&rec.PayloadMassKg,
			&booster,
			&rec.BoosterVersionCategory,
			&rec.Class,
		); err != nil {
			return nil, fmt.Errorf("scanning launch: %w", err)
		}
		if rec.Class != models.OutcomeFailure && rec.Class != models.OutcomeSuccess {
			return nil, fmt.Errorf("flight %d: %w in class: %d", rec.FlightNumber, ErrInvalidValue, rec.Class)
		}
		rec.BoosterVersion = booster.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("[DB INFO] Found %d launches", len(records))
	return records, nil
}
