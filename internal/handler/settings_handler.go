package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/owaies/QuizApp/internal/handler/dto"
	"github.com/owaies/QuizApp/internal/handler/helper"
	"github.com/owaies/QuizApp/internal/service"
)

// SettingsHandler обрабатывает чтение и изменение настройки questionLimit
type SettingsHandler struct {
	quizService *service.QuizService
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(quizService *service.QuizService) *SettingsHandler {
	return &SettingsHandler{quizService: quizService}
}

// GetQuestionLimit обрабатывает GET /api/settings/questionLimit
func (h *SettingsHandler) GetQuestionLimit(c *gin.Context) {
	setting, err := h.quizService.GetQuestionLimit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingResponse(setting))
}

// SetQuestionLimit обрабатывает PUT /api/settings/questionLimit (только администратор).
// Значение принимается строкой или числом.
func (h *SettingsHandler) SetQuestionLimit(c *gin.Context) {
	var req dto.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	value, ok := helper.ScalarToString(req.Value)
	if !ok {
		badRequest(c, "Value must be a non-negative integer")
		return
	}

	setting, err := h.quizService.SetQuestionLimit(c.Request.Context(), value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingResponse(setting))
}
