package repository

import (
	"context"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// SettingRepository определяет методы для работы с именованными настройками
type SettingRepository interface {
	Get(ctx context.Context, name string) (*entity.Setting, error)
	Upsert(ctx context.Context, name, value string) (*entity.Setting, error)
}
