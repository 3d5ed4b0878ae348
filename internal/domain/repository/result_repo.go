package repository

import (
	"context"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// ResultRepository определяет методы для работы с журналом результатов.
// Порядок рейтинга везде один: percentage DESC, submitted_at ASC, id ASC.
type ResultRepository interface {
	SaveResult(ctx context.Context, result *entity.Result) error
	// GetTop возвращает первые limit результатов в порядке рейтинга
	GetTop(ctx context.Context, limit int) ([]entity.Result, error)
	// GetAllRanked возвращает весь журнал в порядке рейтинга
	GetAllRanked(ctx context.Context) ([]entity.Result, error)
	// GetUserBest возвращает лучший результат пользователя в порядке рейтинга
	GetUserBest(ctx context.Context, userID uint) (*entity.Result, error)
	// GetRank возвращает место результата (с 1) во всем журнале
	GetRank(ctx context.Context, result *entity.Result) (int, error)
}
