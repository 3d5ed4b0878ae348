package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/domain/repository"
	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

// Ограничения полей учетной записи (совпадают с размерами колонок)
const (
	maxUsernameLength = 50
	maxEmailLength    = 100
	maxPasswordLength = 72 // bcrypt учитывает только первые 72 байта
)

// TokenIssuer выпускает токен сессии для пользователя
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, error)
}

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupInput содержит данные для регистрации
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult - выпущенный токен и пользователь, которому он принадлежит
type AuthResult struct {
	Token string
	User  *entity.User
}

// Signup регистрирует нового пользователя с ролью user и сразу выдает токен
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	user, err := s.createUser(ctx, input, entity.RoleUser)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	signupsTotal.Inc()
	log.Infof("[AuthService] Зарегистрирован пользователь ID=%d username=%s", user.ID, user.Username)
	return &AuthResult{Token: token, User: user}, nil
}

// CreateAdmin создает администратора. Используется только из CLI.
func (s *AuthService) CreateAdmin(ctx context.Context, input SignupInput) (*entity.User, error) {
	user, err := s.createUser(ctx, input, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	log.Infof("[AuthService] Создан администратор ID=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Login проверяет имя пользователя (без учета регистра) и пароль и выдает токен.
// Неизвестное имя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			loginsTotal.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		loginsTotal.WithLabelValues("rejected").Inc()
		log.Warnf("[AuthService] Неверный пароль для пользователя ID=%d", user.ID)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	loginsTotal.WithLabelValues("ok").Inc()
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) createUser(ctx context.Context, input SignupInput, role string) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	email := entity.NormalizeEmail(input.Email)

	if err := validateSignup(username, email, input.Password); err != nil {
		return nil, err
	}

	// Проверки заранее дают понятное сообщение; уникальные индексы страхуют от гонки
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apperrors.ErrValidation)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrValidation)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: input.Password, // хешируется в BeforeSave
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already taken", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func validateSignup(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be at most %d characters", apperrors.ErrValidation, maxUsernameLength)
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", apperrors.ErrValidation, maxEmailLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}
	if len(password) < entity.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, entity.MinPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrValidation, maxPasswordLength)
	}
	return nil
}
