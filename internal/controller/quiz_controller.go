package controller

import (
	"errors"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
	Cfg     *config.Config
}

func NewQuizController(svc *service.QuizService, cfg *config.Config) *QuizController {
	return &QuizController{Service: svc, Cfg: cfg}
}

// GetQuizQuestions godoc
// @Summary Generate a quiz
// @Description Draws a random set of questions matching the category filter, with correct answers hidden
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param categories query []string false "Category filter, repeatable; omit for all categories"
// @Param limit query int false "Number of questions to draw" default(10)
// @Success 200 {object} util.Response{data=service.QuizSet}
// @Failure 400 {object} util.Response
// @Router /api/quiz [get]
func (c *QuizController) GetQuizQuestions(ctx *gin.Context) {
	categories := ctx.QueryArray("categories")

	limit := c.Cfg.Quiz.DefaultQuestionCount
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			util.BadRequest(ctx, "limit must be an integer")
			return
		}
		limit = parsed
	}

	quiz, err := c.Service.GenerateQuiz(categories, limit)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestionCount) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// SubmitQuiz godoc
// @Summary Grade a quiz submission
// @Description Grades the submitted answers against the original question list and returns per-question verdicts plus aggregate statistics
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmissionRequest true "Ordered question ids and the collected answers"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req service.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.GradeQuiz(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrInvalidOption),
			errors.Is(err, util.ErrDuplicateAnswer),
			errors.Is(err, util.ErrEmptySubmission):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
