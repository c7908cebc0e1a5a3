package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"math"
	"net/http"
	"path"
	"strconv"
	"strings"

	"spacex_dash/internal/chartcache"
	"spacex_dash/internal/httputil"
	"spacex_dash/internal/metrics"
	"spacex_dash/models"
	dash "spacex_dash/pkg/dashboard"
	"spacex_dash/pkg/render"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yosssi/gohtml"
)

// Handler обслуживает страницу дашборда, обработчики виджетов и изображения диаграмм.
type Handler struct {
	App     *dash.App
	Cache   *chartcache.Cache
	Metrics *metrics.Metrics // может быть nil
	Charts  render.Options
	Debug   bool // в режиме отладки HTML страницы форматируется

	page *template.Template
}

// NewHandler создаёт обработчик и разбирает шаблон страницы.
func NewHandler(app *dash.App, cache *chartcache.Cache, m *metrics.Metrics, charts render.Options, debug bool) *Handler {
	if cache == nil {
		cache = chartcache.New(0, 0)
	}
	return &Handler{
		App:     app,
		Cache:   cache,
		Metrics: m,
		Charts:  charts,
		Debug:   debug,
		page:    template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Index отдаёт страницу дашборда.
func (h *Handler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, gin.H{"Layout": h.App.Layout}); err != nil {
		logrus.Errorf("[HANDLER ERROR] Не удалось отрисовать страницу: %v", err)
		httputil.RespondError(c, http.StatusInternalServerError, "Failed to render page")
		return
	}
	body := buf.Bytes()
	if h.Debug {
		body = gohtml.FormatBytes(body)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// Layout возвращает дерево виджетов в JSON.
func (h *Handler) Layout(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Layout)
}

// Dependencies возвращает список привязок «выход ← входы».
func (h *Handler) Dependencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Registry.Callbacks())
}

// Summary возвращает сводку датасета.
func (h *Handler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Dataset.Summary())
}

// UpdateComponent обрабатывает POST /_dash-update-component.
//
// Запрос (JSON):
//
//	{
//	  "output": "success-pie-chart",
//	  "inputs": {"site-dropdown": "All", "payload-slider": [0, 10000]}
//	}
//
// Ответ (200, JSON):
// { "response": { "success-pie-chart": { ...диаграмма... } } }
//
// Возможные ошибки:
// - 400: неверный формат запроса или значения виджета
// - 404: для output не зарегистрирован обработчик
func (h *Handler) UpdateComponent(c *gin.Context) {
	var req struct {
		Output string      `json:"output" binding:"required"`
		Inputs dash.Values `json:"inputs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	figure, err := h.dispatch(req.Output, req.Inputs)
	if err != nil {
		h.respondDispatchError(c, req.Output, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": gin.H{req.Output: figure}})
}

// Chart отдаёт изображение диаграммы: GET /charts/<output>.<png|svg>?site=All&low=0&high=10000.
// Отсутствующие параметры берутся из начального состояния страницы.
func (h *Handler) Chart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	output := strings.TrimSuffix(file, ext)

	format, err := render.ParseFormat(ext)
	if err != nil {
		httputil.RespondError(c, http.StatusNotFound, "Unknown image format")
		return
	}

	state, err := chartState(c)
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	figure, err := h.dispatch(output, state)
	if err != nil {
		h.respondDispatchError(c, output, err)
		return
	}

	opts := h.Charts
	opts.Format = format
	variant, low, high := describe(figure)
	key := chartcache.Key(output, string(format), variant, low, high, opts.Width, opts.Height)

	data, hit, err := h.Cache.GetOrRender(key, func() ([]byte, error) {
		return h.renderFigure(figure, opts)
	})
	if h.Metrics != nil {
		result := "miss"
		if hit {
			result = "hit"
		}
		h.Metrics.CacheLookups.WithLabelValues(result).Inc()
	}
	if err != nil {
		logrus.Errorf("[HANDLER ERROR] Не удалось отрисовать %s: %v", output, err)
		httputil.RespondError(c, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	contentType := mimetype.Detect(data).String()
	if !strings.HasPrefix(contentType, "image/") {
		contentType = format.ContentType()
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) dispatch(output string, state dash.Values) (any, error) {
	figure, err := h.App.Registry.Dispatch(output, state)
	if h.Metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		h.Metrics.Callbacks.WithLabelValues(output, result).Inc()
	}
	return figure, err
}

func (h *Handler) respondDispatchError(c *gin.Context, output string, err error) {
	switch {
	case errors.Is(err, dash.ErrUnknownOutput):
		httputil.RespondError(c, http.StatusNotFound, "Unknown output: "+output)
	case errors.Is(err, dash.ErrInvalidInput):
		httputil.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("[HANDLER ERROR] Обработчик %s завершился ошибкой: %v", output, err)
		httputil.RespondError(c, http.StatusInternalServerError, "Callback failed")
	}
}

func (h *Handler) renderFigure(figure any, opts render.Options) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	var output string
	switch f := figure.(type) {
	case models.PieChart:
		output = f.Output
		err = render.Pie(&buf, f, opts)
	case models.ScatterChart:
		output = f.Output
		err = render.Scatter(&buf, f, opts)
	default:
		return nil, errors.New("unsupported figure type")
	}
	if err != nil {
		return nil, err
	}
	if h.Metrics != nil {
		h.Metrics.Renders.WithLabelValues(output, string(opts.Format)).Inc()
	}
	return buf.Bytes(), nil
}

// chartState переводит параметры запроса в значения виджетов.
func chartState(c *gin.Context) (dash.Values, error) {
	state := dash.Values{}
	if site, ok := c.GetQuery("site"); ok {
		raw, err := json.Marshal(site)
		if err != nil {
			return nil, err
		}
		state[dash.DropdownID] = raw
	}

	lowStr, hasLow := c.GetQuery("low")
	highStr, hasHigh := c.GetQuery("high")
	if hasLow != hasHigh {
		return nil, errors.New("low and high must be given together")
	}
	if hasLow {
		low, err := strconv.ParseFloat(lowStr, 64)
		if err != nil {
			return nil, errors.New("low must be a number")
		}
		high, err := strconv.ParseFloat(highStr, 64)
		if err != nil {
			return nil, errors.New("high must be a number")
		}
		if !isFinite(low) || !isFinite(high) {
			return nil, errors.New("low and high must be finite numbers")
		}
		raw, err := json.Marshal([2]float64{low, high})
		if err != nil {
			return nil, err
		}
		state[dash.SliderID] = raw
	}
	return state, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// describe возвращает то, что отличает одну отрисовку диаграммы от другой:
// заголовок (в нём название площадки) и границы интервала.
func describe(figure any) (variant string, low, high float64) {
	switch f := figure.(type) {
	case models.PieChart:
		return f.Title, 0, 0
	case models.ScatterChart:
		return f.Title, f.Low, f.High
	}
	return "", 0, 0
}
