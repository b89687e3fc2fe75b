package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create persists the question together with its options.
func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Options").
		Preload("SubmittedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs fetches a batch of questions with their options. The result
// carries no ordering guarantee; callers index it by id.
func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Options").Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// FindAll lists questions newest first, optionally filtered by category
// and/or difficulty.
func (r *QuestionRepository) FindAll(category string, difficulty model.Difficulty) ([]model.Question, error) {
	query := r.DB.Preload("Options").
		Preload("SubmittedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Order("created_at DESC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var questions []model.Question
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByCategories(categories []string) (int64, error) {
	query := r.DB.Model(&model.Question{})
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}

// SampleRandom draws up to n random questions matching the category filter
// (empty filter means the whole bank) in a single query, so the draw never
// requests more rows than exist even under concurrent writes. It also
// returns the matching pool size observed alongside the draw.
func (r *QuestionRepository) SampleRandom(categories []string, n int) ([]model.Question, int64, error) {
	total, err := r.CountByCategories(categories)
	if err != nil {
		return nil, 0, err
	}

	query := r.DB.Preload("Options")
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	var questions []model.Question
	err = query.Order("RAND()").Limit(n).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// DistinctCategories lists every category present in the bank.
func (r *QuestionRepository) DistinctCategories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&model.Question{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
