package dashboard

import (
	"sort"

	"spacex_dash/models"
	"spacex_dash/pkg/storage"

	"github.com/sirupsen/logrus"
)

// AllSites — значение выпадающего списка, означающее «все площадки».
const AllSites = "All"

// Подписи секторов для диаграммы одной площадки
const (
	LabelFailure = "Failure"
	LabelSuccess = "Success"
)

var outcomeLabels = map[int]string{
	models.OutcomeFailure: LabelFailure,
	models.OutcomeSuccess: LabelSuccess,
}

// SuccessPie строит круговую диаграмму успешных запусков.
//
// Для "All" — по одному сектору на площадку со суммой флага исхода.
// Для конкретной площадки — число записей на каждый исход в порядке 0, 1.
// Подпись сектора берётся из фактического значения исхода, поэтому у площадки
// без неудач будет один сектор "Success". Отсутствие одного из исходов
// логируется предупреждением.
// Неизвестная площадка даёт диаграмму без секторов.
func SuccessPie(ds *storage.Dataset, site string) models.PieChart {
	if site == AllSites {
		return allSitesPie(ds)
	}
	return sitePie(ds, site)
}

func allSitesPie(ds *storage.Dataset) models.PieChart {
	chart := models.PieChart{
		Output: OutputPieChart,
		Title:  "Successful Launches by Location",
	}
	for _, sc := range ds.Summary().Sites {
		chart.Slices = append(chart.Slices, models.PieSlice{
			Label: sc.LaunchSite,
			Value: float64(sc.Successes),
		})
	}
	return chart
}

func sitePie(ds *storage.Dataset, site string) models.PieChart {
	chart := models.PieChart{
		Output:      OutputPieChart,
		Title:       "Total Successful launches for " + site,
		ValueLabels: true,
	}

	counts := make(map[int]int)
	for _, r := range ds.Records() {
		if r.LaunchSite == site {
			counts[r.Class]++
		}
	}
	if len(counts) == 0 {
		return chart
	}

	outcomes := make([]int, 0, len(counts))
	for outcome := range counts {
		outcomes = append(outcomes, outcome)
	}
	sort.Ints(outcomes)

	for _, outcome := range outcomes {
		chart.Slices = append(chart.Slices, models.PieSlice{
			Label: outcomeLabels[outcome],
			Value: float64(counts[outcome]),
		})
	}

	if len(outcomes) == 1 {
		missing := LabelSuccess
		if outcomes[0] == models.OutcomeSuccess {
			missing = LabelFailure
		}
		logrus.WithFields(logrus.Fields{
			"site":    site,
			"missing": missing,
		}).Warnf("[PIE] У площадки нет исхода %s, диаграмма содержит один сектор", missing)
	}
	return chart
}
