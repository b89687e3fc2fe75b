package service

import (
	"context"
	"encoding/json"
	"errors"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

const categoriesCacheKey = "quizhub:question_categories"

type QuestionService struct {
	Repo  *repository.QuestionRepository
	Redis *redis.Client
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{Repo: repo, Redis: rdb}
}

type QuestionOptionRequest struct {
	Description string `json:"description" binding:"required"`
	IsCorrect   *bool  `json:"isCorrect" binding:"required"`
}

type QuestionRequest struct {
	Description string                  `json:"description" binding:"required"`
	Options     []QuestionOptionRequest `json:"options" binding:"required,min=2"`
	Solution    string                  `json:"solution" binding:"required"`
	Difficulty  string                  `json:"difficulty" binding:"required"`
	Category    string                  `json:"category" binding:"required"`
}

// ValidateQuestion checks the invariants the bank guarantees to the quiz
// engine: a supported difficulty and exactly one correct option.
func ValidateQuestion(req QuestionRequest) error {
	if !model.ValidDifficulty(model.Difficulty(req.Difficulty)) {
		return errors.New("invalid difficulty level")
	}

	correct := 0
	for _, opt := range req.Options {
		if opt.IsCorrect != nil && *opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return errors.New("exactly one option must be marked as correct")
	}

	return nil
}

func (s *QuestionService) CreateQuestion(submitterID uint, req QuestionRequest) (*model.Question, error) {
	if err := ValidateQuestion(req); err != nil {
		return nil, err
	}

	options := make([]model.QuestionOption, len(req.Options))
	for i, opt := range req.Options {
		options[i] = model.QuestionOption{
			Description: opt.Description,
			IsCorrect:   *opt.IsCorrect,
		}
	}

	question := &model.Question{
		Description:   req.Description,
		Options:       options,
		Solution:      req.Solution,
		Difficulty:    model.Difficulty(req.Difficulty),
		Category:      req.Category,
		SubmittedByID: submitterID,
	}

	if err := s.Repo.Create(question); err != nil {
		return nil, err
	}

	// A new question may introduce a new category.
	if s.Redis != nil {
		s.Redis.Del(context.Background(), categoriesCacheKey)
	}

	return question, nil
}

func (s *QuestionService) ListQuestions(category string, difficulty string) ([]model.Question, error) {
	return s.Repo.FindAll(category, model.Difficulty(difficulty))
}

func (s *QuestionService) GetQuestion(id string) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

// ListCategories returns the distinct categories in the bank, cached in
// Redis for ten minutes.
func (s *QuestionService) ListCategories(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, categoriesCacheKey).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := s.Repo.DistinctCategories()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(categories); err == nil {
			s.Redis.Set(ctx, categoriesCacheKey, encoded, 10*time.Minute)
		}
	}

	return categories, nil
}
