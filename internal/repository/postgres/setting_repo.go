package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// SettingRepo реализует repository.SettingRepository
type SettingRepo struct {
	db *gorm.DB
}

// NewSettingRepo создает новый репозиторий настроек
func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

// Get возвращает настройку по имени
func (r *SettingRepo) Get(ctx context.Context, name string) (*entity.Setting, error) {
	var setting entity.Setting
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&setting).Error; err != nil {
		return nil, notFound(err)
	}
	return &setting, nil
}

// Upsert создает или обновляет значение настройки
func (r *SettingRepo) Upsert(ctx context.Context, name, value string) (*entity.Setting, error) {
	setting := entity.Setting{Name: name, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, name)
}
