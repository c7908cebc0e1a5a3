package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacex_dash/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog(m))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	return r
}

// TestRequestIDGenerated проверяет генерацию идентификатора.
func TestRequestIDGenerated(t *testing.T) {
	r := newTestRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("ожидался UUID в заголовке, получено %q", id)
	}
	if w.Body.String() != id {
		t.Fatalf("идентификатор в контексте и в заголовке различается")
	}
}

// TestRequestIDPropagated проверяет, что корректный идентификатор клиента сохраняется,
// а произвольная строка заменяется.
func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(nil)
	want := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, want)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != want {
		t.Fatalf("ожидался %s, получено %s", want, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); strings.Contains(got, "script") {
		t.Fatalf("некорректный идентификатор не должен передаваться дальше: %s", got)
	}
}

// TestAccessLogMetrics проверяет счётчик запросов.
func TestAccessLogMetrics(t *testing.T) {
	m := metrics.New()
	r := newTestRouter(m)
	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("/ping", "GET", "200")); got != 3 {
		t.Fatalf("ожидалось 3 запроса /ping, получено %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Fatalf("ожидался 1 запрос без маршрута, получено %v", got)
	}
}
