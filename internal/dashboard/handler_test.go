package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spacex_dash/internal/chartcache"
	"spacex_dash/internal/metrics"
	"spacex_dash/models"
	dash "spacex_dash/pkg/dashboard"
	"spacex_dash/pkg/render"
	"spacex_dash/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type testServer struct {
	router  *gin.Engine
	metrics *metrics.Metrics
}

// newTestServer поднимает маршруты на датасете из двух записей: A/500/успех, B/9000/неудача.
func newTestServer(t *testing.T, debug bool) testServer {
	t.Helper()
	ds, err := storage.NewDataset([]models.LaunchRecord{
		{FlightNumber: 1, LaunchSite: "A", PayloadMassKg: 500, BoosterVersionCategory: "FT", Class: 1},
		{FlightNumber: 2, LaunchSite: "B", PayloadMassKg: 9000, BoosterVersionCategory: "B4", Class: 0},
	})
	if err != nil {
		t.Fatalf("не удалось создать датасет: %v", err)
	}
	app, err := dash.NewApp(ds)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	gin.SetMode(gin.TestMode)
	m := metrics.New()
	h := NewHandler(app, chartcache.New(time.Minute, 16), m, render.Options{Width: 320, Height: 240}, debug)
	r := gin.New()
	SetupRoutes(r.Group("/"), h)
	return testServer{router: r, metrics: m}
}

func (s testServer) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// TestIndex проверяет, что страница содержит варианты площадок и виджеты.
func TestIndex(t *testing.T) {
	for _, debug := range []bool{false, true} {
		s := newTestServer(t, debug)
		w := s.do(http.MethodGet, "/", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("debug=%v: ожидался 200, получено %d", debug, w.Code)
		}
		body := w.Body.String()
		for _, want := range []string{
			"SpaceX Launch Records Dashboard",
			"Launch Site : A",
			`id="site-dropdown"`,
			`id="success-pie-chart"`,
			`id="success-payload-scatter-chart"`,
			"Payload range (Kg):",
		} {
			if !strings.Contains(body, want) {
				t.Fatalf("debug=%v: страница не содержит %q", debug, want)
			}
		}
	}
}

// TestIndexSliderState проверяет, что страница хранит точные начальные границы
// слайдера и при сдвиге одного ползунка не перечитывает округлённый второй.
func TestIndexSliderState(t *testing.T) {
	s := newTestServer(t, false)
	body := s.do(http.MethodGet, "/", nil).Body.String()

	if !strings.Contains(body, `"value":[500,9000]`) {
		t.Fatalf("начальные границы слайдера не встроены в страницу")
	}
	for _, want := range []string{"onSlide(0, low)", "onSlide(1, high)", "range[i] = Number(input.value)"} {
		if !strings.Contains(body, want) {
			t.Fatalf("страница не содержит %q", want)
		}
	}
	if strings.Contains(body, "Number(high.value)") {
		t.Fatalf("страница читает округлённое значение несдвинутого ползунка")
	}
}

// TestUpdateComponentPie проверяет сценарий: All → A:1, B:0; A → один сектор Success.
func TestUpdateComponentPie(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/_dash-update-component",
		[]byte(`{"output":"success-pie-chart","inputs":{"site-dropdown":"All"}}`))
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Response map[string]models.PieChart `json:"response"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	pie := resp.Response["success-pie-chart"]
	if len(pie.Slices) != 2 || pie.Slices[0].Label != "A" || pie.Slices[0].Value != 1 || pie.Slices[1].Value != 0 {
		t.Fatalf("неверные сектора для All: %+v", pie.Slices)
	}

	w = s.do(http.MethodPost, "/_dash-update-component",
		[]byte(`{"output":"success-pie-chart","inputs":{"site-dropdown":"A"}}`))
	resp.Response = nil
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	pie = resp.Response["success-pie-chart"]
	if len(pie.Slices) != 1 || pie.Slices[0].Label != "Success" || pie.Slices[0].Value != 1 {
		t.Fatalf("неверные сектора для A: %+v", pie.Slices)
	}
}

// TestUpdateComponentScatter проверяет, что на [0, 10000] видны обе точки.
func TestUpdateComponentScatter(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do(http.MethodPost, "/_dash-update-component",
		[]byte(`{"output":"success-payload-scatter-chart","inputs":{"site-dropdown":"All","payload-slider":[0,10000]}}`))
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Response map[string]models.ScatterChart `json:"response"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if n := len(resp.Response["success-payload-scatter-chart"].Points); n != 2 {
		t.Fatalf("ожидалось 2 точки, получено %d", n)
	}
	if got := testutil.ToFloat64(s.metrics.Callbacks.WithLabelValues("success-payload-scatter-chart", "ok")); got != 1 {
		t.Fatalf("счётчик обработчиков не увеличился: %v", got)
	}
}

// TestUpdateComponentErrors проверяет коды ответов на ошибки.
func TestUpdateComponentErrors(t *testing.T) {
	s := newTestServer(t, false)
	tests := []struct {
		name string
		body string
		code int
	}{
		{"неверный JSON", `{`, http.StatusBadRequest},
		{"нет output", `{"inputs":{}}`, http.StatusBadRequest},
		{"неизвестный output", `{"output":"nope"}`, http.StatusNotFound},
		{"неверный слайдер", `{"output":"success-payload-scatter-chart","inputs":{"payload-slider":"x"}}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := s.do(http.MethodPost, "/_dash-update-component", []byte(tt.body))
		if w.Code != tt.code {
			t.Errorf("%s: ожидался %d, получено %d", tt.name, tt.code, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"error"`) {
			t.Errorf("%s: в ответе нет поля error: %s", tt.name, w.Body.String())
		}
	}
}

// TestChartImages проверяет отдачу изображений и кеширование.
func TestChartImages(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/charts/success-pie-chart.png?site=All", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("ожидался image/png, получено %s", ct)
	}

	s.do(http.MethodGet, "/charts/success-pie-chart.png?site=All", nil)
	if got := testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")); got != 1 {
		t.Fatalf("повторный запрос должен попасть в кеш, hits=%v", got)
	}
	if got := testutil.ToFloat64(s.metrics.Renders.WithLabelValues("success-pie-chart", "png")); got != 1 {
		t.Fatalf("ожидалась одна отрисовка, получено %v", got)
	}

	w = s.do(http.MethodGet, "/charts/success-payload-scatter-chart.svg?site=B&low=0&high=10000", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Fatalf("ожидался image/svg+xml, получено %s", ct)
	}

	// Крайние конечные границы дают изображение, а не ошибку отрисовки
	w = s.do(http.MethodGet, "/charts/success-payload-scatter-chart.png?site=All&low=-1e308&high=1e308", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("интервал [-1e308, 1e308]: ожидался 200, получено %d: %s", w.Code, w.Body.String())
	}

	// Пустая выборка всё равно даёт изображение
	w = s.do(http.MethodGet, "/charts/success-payload-scatter-chart.png?site=Nowhere&low=0&high=10000", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("пустая выборка: ожидался 200, получено %d", w.Code)
	}
}

// TestChartErrors проверяет ошибки параметров изображения.
func TestChartErrors(t *testing.T) {
	s := newTestServer(t, false)
	tests := []struct {
		target string
		code   int
	}{
		{"/charts/success-pie-chart.gif", http.StatusNotFound},
		{"/charts/nope.png", http.StatusNotFound},
		{"/charts/success-payload-scatter-chart.png?low=a&high=1", http.StatusBadRequest},
		{"/charts/success-payload-scatter-chart.png?low=1", http.StatusBadRequest},
		{"/charts/success-payload-scatter-chart.png?site=All&low=-Inf&high=Inf", http.StatusBadRequest},
		{"/charts/success-payload-scatter-chart.png?site=All&low=NaN&high=10000", http.StatusBadRequest},
		{"/charts/success-payload-scatter-chart.png?site=All&low=0&high=1e400", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := s.do(http.MethodGet, tt.target, nil); w.Code != tt.code {
			t.Errorf("%s: ожидался %d, получено %d", tt.target, tt.code, w.Code)
		}
	}
}

// TestLayoutAndSummary проверяет JSON-ответы разметки, привязок и сводки.
func TestLayoutAndSummary(t *testing.T) {
	s := newTestServer(t, false)

	var layout dash.Layout
	if err := json.Unmarshal(s.do(http.MethodGet, "/_dash-layout", nil).Body.Bytes(), &layout); err != nil {
		t.Fatalf("не удалось разобрать разметку: %v", err)
	}
	if layout.Slider.Value != [2]float64{500, 9000} {
		t.Fatalf("неверное начальное положение слайдера: %v", layout.Slider.Value)
	}

	var deps []dash.Callback
	if err := json.Unmarshal(s.do(http.MethodGet, "/_dash-dependencies", nil).Body.Bytes(), &deps); err != nil {
		t.Fatalf("не удалось разобрать привязки: %v", err)
	}
	if len(deps) != 2 {
		t.Fatalf("ожидалось 2 привязки, получено %d", len(deps))
	}

	var summary models.DatasetSummary
	if err := json.Unmarshal(s.do(http.MethodGet, "/api/summary", nil).Body.Bytes(), &summary); err != nil {
		t.Fatalf("не удалось разобрать сводку: %v", err)
	}
	if summary.TotalLaunches != 2 || summary.TotalSuccesses != 1 {
		t.Fatalf("неверная сводка: %+v", summary)
	}
}
