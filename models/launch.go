package models

// LaunchRecord описывает одну строку датасета — одну попытку запуска ракеты.
// Записи загружаются один раз при старте и больше не изменяются.
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number" db:"flight_number"`                       // Номер полёта
	LaunchSite             string  `json:"launch_site" db:"launch_site"`                           // Площадка запуска
	PayloadMassKg          float64 `json:"payload_mass_kg" db:"payload_mass_kg"`                   // Масса полезной нагрузки, кг
	BoosterVersion         string  `json:"booster_version,omitempty" db:"booster_version"`         // Полная версия ускорителя (необязательная колонка)
	BoosterVersionCategory string  `json:"booster_version_category" db:"booster_version_category"` // Категория версии ускорителя
	Class                  int     `json:"class" db:"class"`                                       // Исход: 0 — неудача, 1 — успех
}

// Значения флага исхода
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// Succeeded сообщает, завершился ли запуск успешно.
func (r LaunchRecord) Succeeded() bool {
	return r.Class == OutcomeSuccess
}
