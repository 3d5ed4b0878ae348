package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// rankingOrder порядок рейтинга: больший процент выше, при равенстве выше более ранняя отправка
const rankingOrder = "percentage DESC, submitted_at ASC, id ASC"

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult сохраняет итоговый результат попытки
func (r *ResultRepo) SaveResult(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// GetTop возвращает первые limit результатов в порядке рейтинга
func (r *ResultRepo) GetTop(ctx context.Context, limit int) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.WithContext(ctx).Order(rankingOrder).Limit(limit).Find(&results).Error
	return results, err
}

// GetAllRanked возвращает весь журнал результатов в порядке рейтинга
func (r *ResultRepo) GetAllRanked(ctx context.Context) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.WithContext(ctx).Order(rankingOrder).Find(&results).Error
	return results, err
}

// GetUserBest возвращает лучший результат пользователя
func (r *ResultRepo) GetUserBest(ctx context.Context, userID uint) (*entity.Result, error) {
	var result entity.Result
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(rankingOrder).First(&result).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &result, nil
}

// GetRank считает, сколько результатов стоит выше переданного, и возвращает место с 1.
// Вместо полной сортировки журнала используется COUNT по индексу idx_results_ranking.
func (r *ResultRepo) GetRank(ctx context.Context, result *entity.Result) (int, error) {
	var ahead int64
	err := r.db.WithContext(ctx).Model(&entity.Result{}).
		Where("percentage > ?", result.Percentage).
		Or("percentage = ? AND submitted_at < ?", result.Percentage, result.SubmittedAt).
		Or("percentage = ? AND submitted_at = ? AND id < ?", result.Percentage, result.SubmittedAt, result.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
