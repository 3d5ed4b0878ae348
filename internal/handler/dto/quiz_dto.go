package dto

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"github.com/owaies/QuizApp/internal/domain/entity"
)

// AddQuestionRequest тело запроса на добавление вопроса
type AddQuestionRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// QuestionResponse представляет вопрос для клиента.
// Answer заполняется только для администратора.
type QuestionResponse struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewQuestionListResponse преобразует вопросы; includeAnswer раскрывает правильный ответ
func NewQuestionListResponse(questions []entity.Question, includeAnswer bool) []QuestionResponse {
	return lo.Map(questions, func(q entity.Question, _ int) QuestionResponse {
		resp := QuestionResponse{
			ID:        q.ID,
			Question:  q.Text,
			Options:   []string(q.Options),
			CreatedAt: q.CreatedAt,
		}
		if resp.Options == nil {
			resp.Options = []string{}
		}
		if includeAnswer {
			resp.Answer = q.Answer
		}
		return resp
	})
}

// SubmitRequest тело отправки попытки. answers разбирается поэлементно,
// чтобы некорректные элементы можно было пропустить.
type SubmitRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// LeaderboardEntry строка рейтинга
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	ID             uint      `json:"id"`
	UserID         uint      `json:"userId"`
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// NewLeaderboardEntry собирает строку рейтинга для результата с известным местом
func NewLeaderboardEntry(r entity.Result, rank int) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:           rank,
		ID:             r.ID,
		UserID:         r.UserID,
		Username:       r.Username,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		SubmittedAt:    r.SubmittedAt,
	}
}

// NewLeaderboard нумерует результаты, уже отсортированные в порядке рейтинга
func NewLeaderboard(results []entity.Result) []LeaderboardEntry {
	return lo.Map(results, func(r entity.Result, i int) LeaderboardEntry {
		return NewLeaderboardEntry(r, i+1)
	})
}

// SubmitResponse ответ на отправку попытки
type SubmitResponse struct {
	ResultID    uint               `json:"resultId"`
	Score       int                `json:"score"`
	Total       int                `json:"total"`
	Percentage  float64            `json:"percentage"`
	Rank        int                `json:"rank"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardResponse ответ рейтинга. userBest и userRank есть только при валидном токене
// и наличии у пользователя результатов.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	UserBest    *LeaderboardEntry  `json:"userBest,omitempty"`
	UserRank    int                `json:"userRank,omitempty"`
}

// SettingRequest тело изменения настройки; value - строка или число
type SettingRequest struct {
	Value json.RawMessage `json:"value"`
}

// SettingResponse представляет именованную настройку
type SettingResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewSettingResponse преобразует настройку
func NewSettingResponse(s *entity.Setting) SettingResponse {
	return SettingResponse{Name: s.Name, Value: s.Value}
}
