package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/domain/repository"
	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
	"github.com/owaies/QuizApp/pkg/auth"
)

// UserService предоставляет административные методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers возвращает всех пользователей. Хеш пароля не сериализуется (json:"-").
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя и возвращает оставшийся список.
// Администратор не может удалить сам себя. Результаты пользователя остаются в рейтинге.
func (s *UserService) DeleteUser(ctx context.Context, actor auth.Identity, id uint) ([]entity.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if target.ID == actor.UserID {
		log.Warnf("[UserService] Администратор ID=%d пытался удалить собственную учетную запись", actor.UserID)
		return nil, fmt.Errorf("%w: cannot delete your own account", apperrors.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	log.Infof("[UserService] Администратор ID=%d удалил пользователя ID=%d (%s)", actor.UserID, target.ID, target.Username)

	return s.ListUsers(ctx)
}
