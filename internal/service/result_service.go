package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/domain/repository"
	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
	"github.com/owaies/QuizApp/pkg/auth"
)

// ResultService подсчитывает результаты попыток и строит рейтинг
type ResultService struct {
	resultRepo      repository.ResultRepository
	userRepo        repository.UserRepository
	questionRepo    repository.QuestionRepository
	leaderboardSize int
	now             func() time.Time
}

// NewResultService создает новый сервис результатов
func NewResultService(
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	leaderboardSize int,
) *ResultService {
	if leaderboardSize <= 0 {
		leaderboardSize = 10
	}
	return &ResultService{
		resultRepo:      resultRepo,
		userRepo:        userRepo,
		questionRepo:    questionRepo,
		leaderboardSize: leaderboardSize,
		now:             time.Now,
	}
}

// Answer - один разобранный ответ попытки
type Answer struct {
	QuestionID uint
	Choice     string
}

// SubmitOutcome - итог отправки попытки
type SubmitOutcome struct {
	Result      *entity.Result
	Rank        int
	Leaderboard []entity.Result
}

// LeaderboardView - рейтинг и, для аутентифицированного запроса, лучший результат пользователя
type LeaderboardView struct {
	Entries  []entity.Result
	UserBest *entity.Result
	UserRank int
}

// ParseAnswers разбирает элементы массива answers по одному.
// Элемент, который не является объектом {id, answer} с положительным числовым id
// и строковым answer, пропускается. Возвращает только корректные ответы.
func ParseAnswers(raw []json.RawMessage) []Answer {
	answers := make([]Answer, 0, len(raw))
	for _, item := range raw {
		if answer, ok := parseAnswer(item); ok {
			answers = append(answers, answer)
		}
	}
	return answers
}

func parseAnswer(item json.RawMessage) (Answer, bool) {
	var entry struct {
		ID     json.RawMessage `json:"id"`
		Answer *string         `json:"answer"`
	}
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Answer{}, false
	}
	if err := json.Unmarshal(trimmed, &entry); err != nil || entry.Answer == nil {
		return Answer{}, false
	}
	id, ok := parseQuestionID(entry.ID)
	if !ok {
		return Answer{}, false
	}
	return Answer{QuestionID: id, Choice: *entry.Answer}, true
}

// parseQuestionID принимает id как число или как строку из цифр
func parseQuestionID(raw json.RawMessage) (uint, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	id, err := strconv.ParseUint(text, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Submit оценивает попытку: каждый ответ сверяется с вопросом по id, неизвестные id
// не засчитываются. total равен числу отправленных элементов (включая пропущенные).
// Результат сохраняется, затем считаются место и рейтинг.
func (s *ResultService) Submit(ctx context.Context, identity auth.Identity, answers []Answer, total int) (*SubmitOutcome, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: answers must be a non-empty list", apperrors.ErrValidation)
	}

	// Пользователь мог быть удален после выдачи токена
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, identity.UserID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	score, err := s.score(ctx, answers)
	if err != nil {
		return nil, err
	}

	result := &entity.Result{
		UserID:         user.ID,
		Username:       user.Username,
		Score:          score,
		TotalQuestions: total,
		Percentage:     entity.CalculatePercentage(score, total),
		// Точность до микросекунд совпадает с PostgreSQL, иначе сравнение времени в рейтинге расходится
		SubmittedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	submissionsTotal.Inc()
	submissionPercentage.Observe(result.Percentage)

	rank, err := s.resultRepo.GetRank(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rank: %w", err)
	}

	top, err := s.resultRepo.GetTop(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	log.Infof("[ResultService] Пользователь ID=%d: %d/%d (%.2f%%), место %d",
		user.ID, score, total, result.Percentage, rank)
	return &SubmitOutcome{Result: result, Rank: rank, Leaderboard: top}, nil
}

// score считает правильные ответы. Вопросы загружаются одним запросом.
func (s *ResultService) score(ctx context.Context, answers []Answer) (int, error) {
	if len(answers) == 0 {
		return 0, nil
	}
	ids := lo.Uniq(lo.Map(answers, func(a Answer, _ int) uint { return a.QuestionID }))
	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to load questions: %w", err)
	}
	byID := lo.SliceToMap(questions, func(q entity.Question) (uint, entity.Question) { return q.ID, q })

	return lo.CountBy(answers, func(a Answer) bool {
		q, ok := byID[a.QuestionID]
		return ok && q.IsCorrect(a.Choice)
	}), nil
}

// GetLeaderboard возвращает первые leaderboardSize результатов. Если identity не nil,
// добавляются лучший результат пользователя и его место во всем журнале.
func (s *ResultService) GetLeaderboard(ctx context.Context, identity *auth.Identity) (*LeaderboardView, error) {
	top, err := s.resultRepo.GetTop(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	view := &LeaderboardView{Entries: top}
	if identity == nil {
		return view, nil
	}

	best, err := s.resultRepo.GetUserBest(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("failed to load user best: %w", err)
	}
	rank, err := s.resultRepo.GetRank(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rank: %w", err)
	}
	view.UserBest = best
	view.UserRank = rank
	return view, nil
}

// RankedResults возвращает весь журнал результатов в порядке рейтинга (для экспорта)
func (s *ResultService) RankedResults(ctx context.Context) ([]entity.Result, error) {
	results, err := s.resultRepo.GetAllRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return results, nil
}
