package dashboard

import (
	"fmt"

	"spacex_dash/models"
)

// Идентификаторы виджетов страницы
const (
	DropdownID         = "site-dropdown"
	SliderID           = "payload-slider"
	OutputPieChart     = "success-pie-chart"
	OutputScatterChart = "success-payload-scatter-chart"
)

// Фиксированные параметры слайдера нагрузки
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type RangeSlider struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

type Graph struct {
	ID string `json:"id"`
}

// Layout — дерево виджетов страницы. Строится один раз из сводки датасета.
type Layout struct {
	Title        string      `json:"title"`
	Dropdown     Dropdown    `json:"dropdown"`
	PieGraph     Graph       `json:"pie_graph"`
	Slider       RangeSlider `json:"slider"`
	ScatterGraph Graph       `json:"scatter_graph"`
}

// NewLayout заполняет выпадающий список площадками из сводки,
// а начальное положение слайдера — наблюдаемыми min/max нагрузки.
func NewLayout(summary models.DatasetSummary) Layout {
	options := []Option{{Label: "All Launch Sites", Value: AllSites}}
	for _, site := range summary.SiteNames() {
		options = append(options, Option{Label: "Launch Site : " + site, Value: site})
	}

	// Метки 0..9000: последняя отметка 10000 не выводится
	var marks []Mark
	for v := SliderMin; v < SliderMax; v += SliderStep {
		marks = append(marks, Mark{Value: float64(v), Label: fmt.Sprintf("%d", v)})
	}

	return Layout{
		Title: "SpaceX Launch Records Dashboard",
		Dropdown: Dropdown{
			ID:          DropdownID,
			Options:     options,
			Value:       AllSites,
			Placeholder: "Enter Launch Site",
			Searchable:  true,
		},
		PieGraph: Graph{ID: OutputPieChart},
		Slider: RangeSlider{
			ID:    SliderID,
			Label: "Payload range (Kg):",
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Marks: marks,
			Value: [2]float64{summary.MinPayloadKg, summary.MaxPayloadKg},
		},
		ScatterGraph: Graph{ID: OutputScatterChart},
	}
}

// InitialValues возвращает начальные значения входных виджетов по их ID.
func (l Layout) InitialValues() map[string]any {
	return map[string]any{
		l.Dropdown.ID: l.Dropdown.Value,
		l.Slider.ID:   l.Slider.Value,
	}
}
