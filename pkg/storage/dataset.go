package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"spacex_dash/models"

	"github.com/sirupsen/logrus"
)

// ErrEmptyDataset сообщает, что источник не вернул ни одной записи.
// Без записей нельзя вычислить границы слайдера, поэтому старт прерывается.
var ErrEmptyDataset = errors.New("dataset contains no launch records")

// Source — любой источник записей о запусках (CSV, Postgres, SQLite).
type Source interface {
	LoadLaunches(ctx context.Context) ([]models.LaunchRecord, error)
}

// Dataset — неизменяемая таблица запусков и вычисленные при загрузке агрегаты.
// Один экземпляр создаётся до регистрации обработчиков и передаётся им по указателю.
type Dataset struct {
	records []models.LaunchRecord
	summary models.DatasetSummary
	sites   map[string]struct{}
}

// Load читает все записи из источника и строит Dataset.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	records, err := src.LoadLaunches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading launches: %w", err)
	}
	ds, err := NewDataset(records)
	if err != nil {
		return nil, err
	}
	logrus.Infof("[DATA] Загружено %d запусков, площадок: %d, нагрузка %.0f–%.0f кг",
		ds.summary.TotalLaunches, len(ds.summary.Sites), ds.summary.MinPayloadKg, ds.summary.MaxPayloadKg)
	return ds, nil
}

// NewDataset копирует записи и вычисляет сводку: min/max нагрузки и счётчики по площадкам.
func NewDataset(records []models.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		records: append([]models.LaunchRecord(nil), records...),
		sites:   make(map[string]struct{}),
	}

	perSite := make(map[string]*models.SiteCount)
	ds.summary.MinPayloadKg = records[0].PayloadMassKg
	ds.summary.MaxPayloadKg = records[0].PayloadMassKg
	for _, r := range ds.records {
		if r.PayloadMassKg < ds.summary.MinPayloadKg {
			ds.summary.MinPayloadKg = r.PayloadMassKg
		}
		if r.PayloadMassKg > ds.summary.MaxPayloadKg {
			ds.summary.MaxPayloadKg = r.PayloadMassKg
		}

		sc, ok := perSite[r.LaunchSite]
		if !ok {
			sc = &models.SiteCount{LaunchSite: r.LaunchSite}
			perSite[r.LaunchSite] = sc
			ds.sites[r.LaunchSite] = struct{}{}
		}
		sc.Launches++
		sc.Successes += r.Class

		ds.summary.TotalLaunches++
		ds.summary.TotalSuccesses += r.Class
	}

	// Порядок площадок совпадает с группировкой по названию
	names := make([]string, 0, len(perSite))
	for name := range perSite {
		names = append(names, name)
	}
	sort.Strings(names)
	ds.summary.Sites = make([]models.SiteCount, 0, len(names))
	for _, name := range names {
		ds.summary.Sites = append(ds.summary.Sites, *perSite[name])
	}

	return ds, nil
}

// Records возвращает копию записей в исходном порядке.
func (d *Dataset) Records() []models.LaunchRecord {
	return append([]models.LaunchRecord(nil), d.records...)
}

// Len возвращает количество записей.
func (d *Dataset) Len() int { return len(d.records) }

// Summary возвращает копию сводки, чтобы вызывающий код не мог изменить общий срез площадок.
func (d *Dataset) Summary() models.DatasetSummary {
	s := d.summary
	s.Sites = append([]models.SiteCount(nil), d.summary.Sites...)
	return s
}

// HasSite проверяет, встречается ли площадка в датасете.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.sites[site]
	return ok
}
