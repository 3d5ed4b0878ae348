package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// UserResponse представляет пользователя для администратора (без пароля)
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserListResponse преобразует пользователей
func NewUserListResponse(users []entity.User) []UserResponse {
	return lo.Map(users, func(u entity.User, _ int) UserResponse {
		return UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	})
}
