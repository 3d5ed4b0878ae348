package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

// MinOptions минимальное количество вариантов ответа у вопроса
const MinOptions = 2

// Пределы длины совпадают с размерами колонок question и answer
const (
	MaxQuestionLength = 500
	MaxOptionLength   = 200
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		// SQLite отдает JSON как TEXT
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос викторины
type Question struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Text      string      `gorm:"column:question;size:500;not null" json:"question"`
	Options   StringArray `gorm:"type:jsonb;not null" json:"options"`
	Answer    string      `gorm:"size:200;not null" json:"-"` // Скрыто от клиента, отдается только админу через DTO
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, совпадает ли выбранный вариант с правильным ответом
func (q *Question) IsCorrect(chosen string) bool {
	return chosen == q.Answer
}

// HasOption проверяет, есть ли вариант среди вариантов ответа
func (q *Question) HasOption(option string) bool {
	return lo.Contains(q.Options, option)
}

// Normalize обрезает пробелы у текста, вариантов и ответа
func (q *Question) Normalize() {
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Options = lo.Map(q.Options, func(opt string, _ int) string {
		return strings.TrimSpace(opt)
	})
}

// Validate проверяет инварианты вопроса. maxOptions <= 0 означает отсутствие верхнего предела.
func (q *Question) Validate(maxOptions int) error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(q.Text) > MaxQuestionLength {
		return fmt.Errorf("%w: question must be at most %d characters", apperrors.ErrValidation, MaxQuestionLength)
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("%w: at least %d options required", apperrors.ErrValidation, MinOptions)
	}
	if maxOptions > 0 && len(q.Options) > maxOptions {
		return fmt.Errorf("%w: at most %d options allowed", apperrors.ErrValidation, maxOptions)
	}
	if lo.Contains(q.Options, "") {
		return fmt.Errorf("%w: options must not be empty", apperrors.ErrValidation)
	}
	// Ответ совпадает с одним из вариантов, поэтому предел варианта ограничивает и ответ
	if lo.SomeBy(q.Options, func(opt string) bool { return utf8.RuneCountInString(opt) > MaxOptionLength }) {
		return fmt.Errorf("%w: options must be at most %d characters", apperrors.ErrValidation, MaxOptionLength)
	}
	if len(lo.Uniq(q.Options)) != len(q.Options) {
		return fmt.Errorf("%w: options must be distinct", apperrors.ErrValidation)
	}
	if q.Answer == "" {
		return fmt.Errorf("%w: answer is required", apperrors.ErrValidation)
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: answer must be one of the options", apperrors.ErrValidation)
	}
	return nil
}
