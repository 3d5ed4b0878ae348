package entity

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

// SettingQuestionLimit имя настройки лимита вопросов для одной попытки
const SettingQuestionLimit = "questionLimit"

// DefaultQuestionLimit значение по умолчанию: 0 означает "без лимита"
const DefaultQuestionLimit = "0"

// Setting хранит одно именованное значение конфигурации
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"-"`
	Name  string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Value string `gorm:"size:255;not null" json:"value"`
}

// TableName определяет имя таблицы для GORM
func (Setting) TableName() string {
	return "settings"
}

// ParseQuestionLimit разбирает значение лимита вопросов. Допустимы только целые числа >= 0.
func ParseQuestionLimit(value string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: question limit must be an integer", apperrors.ErrValidation)
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: question limit must be 0 or greater", apperrors.ErrValidation)
	}
	return limit, nil
}
