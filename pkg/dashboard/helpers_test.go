package dashboard

import (
	"context"
	"testing"

	"spacex_dash/models"
	"spacex_dash/pkg/storage"
)

// scenarioDataset — две записи: A/500/успех и B/9000/неудача.
func scenarioDataset(t *testing.T) *storage.Dataset {
	t.Helper()
	ds, err := storage.NewDataset([]models.LaunchRecord{
		{FlightNumber: 1, LaunchSite: "A", PayloadMassKg: 500, BoosterVersionCategory: "FT", Class: 1},
		{FlightNumber: 2, LaunchSite: "B", PayloadMassKg: 9000, BoosterVersionCategory: "B4", Class: 0},
	})
	if err != nil {
		t.Fatalf("не удалось создать датасет: %v", err)
	}
	return ds
}

// fixtureDataset читает тестовую выгрузку из пакета storage.
func fixtureDataset(t *testing.T) *storage.Dataset {
	t.Helper()
	ds, err := storage.Load(context.Background(), storage.CSVSource{Path: "../storage/testdata/launches.csv"})
	if err != nil {
		t.Fatalf("не удалось загрузить тестовый CSV: %v", err)
	}
	return ds
}
