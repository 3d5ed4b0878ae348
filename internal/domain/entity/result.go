package entity

import (
	"time"
)

// Result представляет итог одной попытки прохождения викторины.
// Записи только добавляются; Username денормализован и переживает удаление пользователя.
type Result struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"userId"`
	Username       string    `gorm:"size:50;not null" json:"username"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	TotalQuestions int       `gorm:"not null;default:0" json:"totalQuestions"`
	Percentage     float64   `gorm:"not null;default:0;index:idx_results_ranking,priority:1" json:"percentage"`
	SubmittedAt    time.Time `gorm:"not null;index:idx_results_ranking,priority:2" json:"submittedAt"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// CalculatePercentage возвращает 100 * score / total, либо 0 при total == 0
func CalculatePercentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) * 100 / float64(total)
}

// Outranks сообщает, стоит ли r выше other в рейтинге:
// процент по убыванию, затем время отправки по возрастанию, затем ID.
func (r *Result) Outranks(other *Result) bool {
	if r.Percentage != other.Percentage {
		return r.Percentage > other.Percentage
	}
	if !r.SubmittedAt.Equal(other.SubmittedAt) {
		return r.SubmittedAt.Before(other.SubmittedAt)
	}
	return r.ID < other.ID
}
