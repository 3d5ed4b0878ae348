package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

// errorMapping сопоставляет ошибку приложения со статусом HTTP и сообщением по умолчанию
var errorMapping = []struct {
	target  error
	status  int
	message string
}{
	{apperrors.ErrValidation, http.StatusBadRequest, "Bad request"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{apperrors.ErrNotFound, http.StatusNotFound, "Not found"},
}

// respondError превращает ошибку сервиса в JSON {"error": "..."}.
// Для ожидаемых ошибок клиенту уходит уточнение из обертки, для остальных - 500 без деталей.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			message := m.message
			if m.status != http.StatusNotFound {
				if detail := errorDetail(err, m.target); detail != "" {
					message = detail
				}
			}
			c.AbortWithStatusJSON(m.status, gin.H{"error": message})
			return
		}
	}

	log.Errorf("[Handler] Внутренняя ошибка %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// badRequest отвечает 400 с сообщением
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// errorDetail достает уточнение из "sentinel: detail" и делает первую букву заглавной
func errorDetail(err, sentinel error) string {
	prefix := sentinel.Error() + ": "
	text := err.Error()
	idx := strings.Index(text, prefix)
	if idx < 0 {
		return ""
	}
	detail := strings.TrimSpace(text[idx+len(prefix):])
	if detail == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(detail)
	return string(unicode.ToUpper(r)) + detail[size:]
}
