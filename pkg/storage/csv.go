package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"spacex_dash/models"
)

// Названия колонок CSV-файла с запусками
const (
	ColumnLaunchSite             = "Launch Site"
	ColumnFlightNumber           = "Flight Number"
	ColumnPayloadMass            = "Payload Mass (kg)"
	ColumnBoosterVersion         = "Booster Version"
	ColumnBoosterVersionCategory = "Booster Version Category"
	ColumnClass                  = "class"
)

var requiredColumns = []string{
	ColumnLaunchSite,
	ColumnFlightNumber,
	ColumnPayloadMass,
	ColumnBoosterVersionCategory,
	ColumnClass,
}

// ErrMissingColumn возвращается, если в заголовке нет обязательной колонки.
var ErrMissingColumn = errors.New("missing required column")

// ErrInvalidValue возвращается, если значение ячейки не удаётся разобрать.
var ErrInvalidValue = errors.New("invalid value")

// CSVSource читает запуски из CSV-файла с заголовком.
// Порядок колонок произвольный, лишние колонки игнорируются.
type CSVSource struct {
	Path string
}

// LoadLaunches открывает файл и разбирает все строки.
func (s CSVSource) LoadLaunches(ctx context.Context) ([]models.LaunchRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	records, err := ReadLaunchesCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return records, nil
}

// ReadLaunchesCSV разбирает CSV из произвольного reader.
func ReadLaunchesCSV(ctx context.Context, r io.Reader) ([]models.LaunchRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		// Первая колонка pandas-выгрузки может начинаться с BOM
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	boosterIdx, hasBooster := index[ColumnBoosterVersion]

	var records []models.LaunchRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseLaunchRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if hasBooster {
			rec.BoosterVersion = strings.TrimSpace(row[boosterIdx])
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseLaunchRow(row []string, index map[string]int) (models.LaunchRecord, error) {
	var rec models.LaunchRecord
	cell := func(col string) string { return strings.TrimSpace(row[index[col]]) }

	rec.LaunchSite = cell(ColumnLaunchSite)
	rec.BoosterVersionCategory = cell(ColumnBoosterVersionCategory)

	flight, err := parseWholeNumber(cell(ColumnFlightNumber))
	if err != nil {
		return rec, fmt.Errorf("%w in %q: %v", ErrInvalidValue, ColumnFlightNumber, err)
	}
	rec.FlightNumber = flight

	payload, err := strconv.ParseFloat(cell(ColumnPayloadMass), 64)
	if err != nil || math.IsNaN(payload) {
		return rec, fmt.Errorf("%w in %q: %q", ErrInvalidValue, ColumnPayloadMass, cell(ColumnPayloadMass))
	}
	rec.PayloadMassKg = payload

	class, err := parseWholeNumber(cell(ColumnClass))
	if err != nil || (class != models.OutcomeFailure && class != models.OutcomeSuccess) {
		return rec, fmt.Errorf("%w in %q: %q", ErrInvalidValue, ColumnClass, cell(ColumnClass))
	}
	rec.Class = class

	return rec, nil
}

// parseWholeNumber принимает и "7", и "7.0" — так pandas пишет целые колонки с пропусками.
func parseWholeNumber(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}
