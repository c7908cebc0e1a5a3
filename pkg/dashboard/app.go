package dashboard

import (
	"spacex_dash/pkg/storage"
)

// App объединяет датасет, разметку страницы и реестр обработчиков.
type App struct {
	Dataset  *storage.Dataset
	Layout   Layout
	Registry *Registry
}

// NewApp строит разметку по датасету и регистрирует два обработчика:
// круговую диаграмму по выпадающему списку и диаграмму рассеяния
// по выпадающему списку и слайдеру.
func NewApp(ds *storage.Dataset) (*App, error) {
	layout := NewLayout(ds.Summary())
	registry, err := NewRegistry(layout.InitialValues())
	if err != nil {
		return nil, err
	}

	if err := registry.Register(Callback{
		Output: OutputPieChart,
		Inputs: []string{DropdownID},
		Func: func(v Values) (any, error) {
			site, err := v.String(DropdownID)
			if err != nil {
				return nil, err
			}
			return SuccessPie(ds, site), nil
		},
	}); err != nil {
		return nil, err
	}

	if err := registry.Register(Callback{
		Output: OutputScatterChart,
		Inputs: []string{DropdownID, SliderID},
		Func: func(v Values) (any, error) {
			site, err := v.String(DropdownID)
			if err != nil {
				return nil, err
			}
			low, high, err := v.Range(SliderID)
			if err != nil {
				return nil, err
			}
			return PayloadScatter(ds, site, low, high), nil
		},
	}); err != nil {
		return nil, err
	}

	return &App{Dataset: ds, Layout: layout, Registry: registry}, nil
}
