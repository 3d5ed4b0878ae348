package dto

import "github.com/owaies/QuizApp/internal/domain/entity"

// SignupRequest тело запроса регистрации
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest тело запроса входа. Имя пользователя - единственный идентификатор входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse ответ регистрации и входа
type AuthResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
	UserID   uint   `json:"userId"`
}

// NewAuthResponse собирает ответ из выпущенного токена и пользователя
func NewAuthResponse(token string, user *entity.User) AuthResponse {
	return AuthResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
		UserID:   user.ID,
	}
}
