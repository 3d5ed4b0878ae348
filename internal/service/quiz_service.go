package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/owaies/QuizApp/internal/domain/entity"
	"github.com/owaies/QuizApp/internal/domain/repository"
	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
	"github.com/owaies/QuizApp/pkg/auth"
)

// QuizService управляет банком вопросов и настройкой лимита вопросов
type QuizService struct {
	questionRepo repository.QuestionRepository
	settingRepo  repository.SettingRepository
	sampler      *Sampler
	maxOptions   int
}

// NewQuizService создает новый сервис викторины.
// maxOptions <= 0 снимает верхний предел числа вариантов.
func NewQuizService(
	questionRepo repository.QuestionRepository,
	settingRepo repository.SettingRepository,
	sampler *Sampler,
	maxOptions int,
) *QuizService {
	if sampler == nil {
		sampler = NewSampler(nil)
	}
	return &QuizService{
		questionRepo: questionRepo,
		settingRepo:  settingRepo,
		sampler:      sampler,
		maxOptions:   maxOptions,
	}
}

// QuestionInput содержит данные нового вопроса
type QuestionInput struct {
	Question string
	Options  []string
	Answer   string
}

// ListQuestions возвращает вопросы для запрашивающего.
// Администратор получает весь банк (новые первыми). Остальные получают случайную
// выборку из questionLimit вопросов, если 0 < limit < размера банка, иначе весь банк.
func (s *QuizService) ListQuestions(ctx context.Context, identity auth.Identity) ([]entity.Question, error) {
	questions, err := s.questionRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if identity.IsAdmin() {
		return questions, nil
	}

	limit, err := s.questionLimit(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(questions) {
		return Sample(s.sampler, questions, limit), nil
	}
	return questions, nil
}

// AddQuestion проверяет и сохраняет вопрос, затем возвращает весь банк (новые первыми)
func (s *QuizService) AddQuestion(ctx context.Context, input QuestionInput) ([]entity.Question, error) {
	question := &entity.Question{
		Text:    input.Question,
		Options: entity.StringArray(input.Options),
		Answer:  input.Answer,
	}
	question.Normalize()
	if err := question.Validate(s.maxOptions); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	log.Infof("[QuizService] Добавлен вопрос ID=%d", question.ID)

	return s.questionRepo.ListNewestFirst(ctx)
}

// DeleteQuestion удаляет вопрос и возвращает оставшийся банк (новые первыми).
// Несуществующий ID дает apperrors.ErrNotFound.
func (s *QuizService) DeleteQuestion(ctx context.Context, id uint) ([]entity.Question, error) {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: question %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}
	log.Infof("[QuizService] Удален вопрос ID=%d", id)

	return s.questionRepo.ListNewestFirst(ctx)
}

// GetQuestionLimit возвращает настройку questionLimit, по умолчанию "0"
func (s *QuizService) GetQuestionLimit(ctx context.Context) (*entity.Setting, error) {
	setting, err := s.settingRepo.Get(ctx, entity.SettingQuestionLimit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &entity.Setting{Name: entity.SettingQuestionLimit, Value: entity.DefaultQuestionLimit}, nil
		}
		return nil, fmt.Errorf("failed to load setting: %w", err)
	}
	return setting, nil
}

// SetQuestionLimit сохраняет новое значение лимита. Допустимы только целые числа >= 0.
func (s *QuizService) SetQuestionLimit(ctx context.Context, value string) (*entity.Setting, error) {
	limit, err := entity.ParseQuestionLimit(value)
	if err != nil {
		return nil, err
	}

	setting, err := s.settingRepo.Upsert(ctx, entity.SettingQuestionLimit, strconv.Itoa(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	log.Infof("[QuizService] questionLimit = %s", setting.Value)
	return setting, nil
}

// questionLimit читает лимит. Поврежденное значение в хранилище трактуется как "без лимита".
func (s *QuizService) questionLimit(ctx context.Context) (int, error) {
	setting, err := s.GetQuestionLimit(ctx)
	if err != nil {
		return 0, err
	}
	limit, err := entity.ParseQuestionLimit(strings.TrimSpace(setting.Value))
	if err != nil {
		log.Warnf("[QuizService] Некорректное значение questionLimit=%q, лимит не применяется", setting.Value)
		return 0, nil
	}
	return limit, nil
}
