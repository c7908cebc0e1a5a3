package dashboard

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes регистрирует маршруты страницы, обработчиков виджетов и диаграмм.
func SetupRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/", h.Index)
	r.GET("/_dash-layout", h.Layout)
	r.GET("/_dash-dependencies", h.Dependencies)
	r.POST("/_dash-update-component", h.UpdateComponent)
	r.GET("/charts/:file", h.Chart)
	r.GET("/api/summary", h.Summary)

	logrus.Infof("[ROUTER] Dashboard routes registered")
}
