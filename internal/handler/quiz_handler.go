package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/owaies/QuizApp/internal/handler/dto"
	"github.com/owaies/QuizApp/internal/handler/helper"
	"github.com/owaies/QuizApp/internal/middleware"
	"github.com/owaies/QuizApp/internal/service"
	"github.com/owaies/QuizApp/pkg/auth"
)

// questionIDKey ключ контекста для ID вопроса из URL
const questionIDKey = "questionID"

// QuizHandler обрабатывает запросы банка вопросов, отправки попыток и рейтинга
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// GetQuestions обрабатывает GET /api/questions.
// Правильные ответы видит только администратор.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	questions, err := h.quizService.ListQuestions(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions, identity.IsAdmin()))
}

// AddQuestion обрабатывает POST /api/questions (только администратор)
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	var req dto.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	questions, err := h.quizService.AddQuestion(c.Request.Context(), service.QuestionInput{
		Question: req.Question,
		Options:  req.Options,
		Answer:   req.Answer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionListResponse(questions, true))
}

// DeleteQuestion обрабатывает DELETE /api/questions/:id (только администратор)
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	id := middleware.GetUintParam(c, questionIDKey)

	questions, err := h.quizService.DeleteQuestion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions, true))
}

// Submit обрабатывает POST /api/submit.
// answers должен быть непустым массивом; некорректные элементы пропускаются, но учитываются в total.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	items, ok := helper.DecodeArray(req.Answers)
	if !ok || len(items) == 0 {
		badRequest(c, "Answers must be a non-empty list")
		return
	}

	identity, _ := middleware.GetIdentity(c)
	outcome, err := h.resultService.Submit(c.Request.Context(), identity, service.ParseAnswers(items), len(items))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		ResultID:    outcome.Result.ID,
		Score:       outcome.Result.Score,
		Total:       outcome.Result.TotalQuestions,
		Percentage:  outcome.Result.Percentage,
		Rank:        outcome.Rank,
		Leaderboard: dto.NewLeaderboard(outcome.Leaderboard),
	})
}

// GetLeaderboard обрабатывает GET /api/leaderboard.
// С валидным токеном добавляются лучший результат и место пользователя.
func (h *QuizHandler) GetLeaderboard(c *gin.Context) {
	var identityPtr *auth.Identity
	if identity, ok := middleware.GetIdentity(c); ok {
		identityPtr = &identity
	}

	view, err := h.resultService.GetLeaderboard(c.Request.Context(), identityPtr)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.LeaderboardResponse{Leaderboard: dto.NewLeaderboard(view.Entries)}
	if view.UserBest != nil {
		best := dto.NewLeaderboardEntry(*view.UserBest, view.UserRank)
		resp.UserBest = &best
		resp.UserRank = view.UserRank
	}
	c.JSON(http.StatusOK, resp)
}
