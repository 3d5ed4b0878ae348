package repository

import (
	"context"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	// GetByIDs возвращает найденные вопросы; отсутствующие ID молча пропускаются
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error)
	// ListNewestFirst возвращает все вопросы, новые первыми
	ListNewestFirst(ctx context.Context) ([]entity.Question, error)
	Delete(ctx context.Context, id uint) error
}
