package models

// SiteCount хранит агрегаты по одной площадке запуска.
type SiteCount struct {
	LaunchSite string `json:"launch_site"`
	Launches   int    `json:"launches"`  // Всего записей по площадке
	Successes  int    `json:"successes"` // Сумма флага исхода по площадке
}

// DatasetSummary содержит скалярные значения, вычисленные при загрузке датасета.
// Sites отсортированы по названию площадки.
type DatasetSummary struct {
	MinPayloadKg   float64     `json:"min_payload_kg"`
	MaxPayloadKg   float64     `json:"max_payload_kg"`
	TotalLaunches  int         `json:"total_launches"`
	TotalSuccesses int         `json:"total_successes"`
	Sites          []SiteCount `json:"sites"`
}

// SiteNames возвращает названия площадок в порядке Sites.
func (s DatasetSummary) SiteNames() []string {
	names := make([]string, 0, len(s.Sites))
	for _, site := range s.Sites {
		names = append(names, site.LaunchSite)
	}
	return names
}
