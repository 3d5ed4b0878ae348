package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/owaies/QuizApp/internal/handler/dto"
	"github.com/owaies/QuizApp/internal/middleware"
	"github.com/owaies/QuizApp/internal/service"
)

// userIDKey ключ контекста для ID пользователя из URL
const userIDKey = "targetUserID"

// UserHandler обрабатывает административные запросы к пользователям
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers обрабатывает GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// DeleteUser обрабатывает DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, _ := middleware.GetIdentity(c)
	id := middleware.GetUintParam(c, userIDKey)

	users, err := h.userService.DeleteUser(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}
