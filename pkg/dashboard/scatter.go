package dashboard

import (
	"spacex_dash/models"
	"spacex_dash/pkg/storage"
)

// PayloadScatter строит диаграмму рассеяния «масса нагрузки / исход».
//
// В выборку попадают записи с low < нагрузка < high: интервал открытый,
// значения на границах исключаются. Для конкретной площадки выборка
// дополнительно ограничивается ею. Пустая выборка — диаграмма без точек.
func PayloadScatter(ds *storage.Dataset, site string, low, high float64) models.ScatterChart {
	chart := models.ScatterChart{
		Output: OutputScatterChart,
		Title:  "Correlation between Payload and Success for " + siteTitle(site),
		XLabel: "Payload Mass (kg)",
		YLabel: "class",
		Low:    low,
		High:   high,
	}

	seen := make(map[string]bool)
	for _, r := range ds.Records() {
		if !(r.PayloadMassKg > low && r.PayloadMassKg < high) {
			continue
		}
		if site != AllSites && r.LaunchSite != site {
			continue
		}
		if !seen[r.BoosterVersionCategory] {
			seen[r.BoosterVersionCategory] = true
			chart.Categories = append(chart.Categories, r.BoosterVersionCategory)
		}
		chart.Points = append(chart.Points, models.ScatterPoint{
			FlightNumber:           r.FlightNumber,
			LaunchSite:             r.LaunchSite,
			PayloadMassKg:          r.PayloadMassKg,
			Class:                  r.Class,
			BoosterVersionCategory: r.BoosterVersionCategory,
			Size:                   r.PayloadMassKg,
		})
	}
	return chart
}

func siteTitle(site string) string {
	if site == AllSites {
		return "All Sites"
	}
	return site
}
