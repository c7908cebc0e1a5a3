package httputil

import "github.com/gin-gonic/gin"

// RespondError отправляет сообщение об ошибке в едином формате и прекращает обработку запроса.
// Используем AbortWithStatusJSON, чтобы последующие обработчики не выполнялись, даже если забыли вернуть управление.
// Если у запроса есть идентификатор, он добавляется в ответ для поиска по логам.
func RespondError(c *gin.Context, status int, msg string) {
	body := gin.H{"error": msg}
	if id := c.GetString("request_id"); id != "" {
		body["request_id"] = id
	}
	c.AbortWithStatusJSON(status, body)
}
