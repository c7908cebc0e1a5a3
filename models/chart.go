package models

// PieSlice — один сектор круговой диаграммы.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieChart описывает круговую диаграмму, готовую к отрисовке.
type PieChart struct {
	Output string     `json:"output"` // ID виджета, в который выводится диаграмма
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
	// ValueLabels — подписывать сектора количеством, а не долей в процентах
	ValueLabels bool `json:"value_labels"`
}

// Total возвращает сумму значений всех секторов.
func (p PieChart) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// ScatterPoint — одна точка диаграммы рассеяния «масса нагрузки / исход».
type ScatterPoint struct {
	FlightNumber           int     `json:"flight_number"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"` // Ось X
	Class                  int     `json:"class"`           // Ось Y
	BoosterVersionCategory string  `json:"booster_version_category"`
	Size                   float64 `json:"size"` // Размер точки пропорционален массе нагрузки
}

// ScatterChart описывает диаграмму рассеяния для выбранного диапазона нагрузки.
// Low и High — границы открытого интервала фильтра.
type ScatterChart struct {
	Output     string         `json:"output"`
	Title      string         `json:"title"`
	XLabel     string         `json:"x_label"`
	YLabel     string         `json:"y_label"`
	Low        float64        `json:"low"`
	High       float64        `json:"high"`
	Categories []string       `json:"categories"` // Категории ускорителей в порядке первого появления
	Points     []ScatterPoint `json:"points"`
}
