package service

import (
	"fmt"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/logger"
	"quizhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// QuestionStore is the slice of the question bank the quiz engine reads.
type QuestionStore interface {
	FindByIDs(ids []string) ([]model.Question, error)
	SampleRandom(categories []string, n int) ([]model.Question, int64, error)
}

type QuizService struct {
	Store QuestionStore
	Cfg   *config.Config
}

func NewQuizService(store QuestionStore, cfg *config.Config) *QuizService {
	return &QuizService{Store: store, Cfg: cfg}
}

// SanitizedOption is an option stripped of its correctness marker, safe to
// send to a client before grading.
type SanitizedOption struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type SanitizedQuestion struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Options     []SanitizedOption `json:"options"`
	Category    string            `json:"category"`
	Difficulty  model.Difficulty  `json:"difficulty"`
}

// swagger:model QuizSet
type QuizSet struct {
	Questions      []SanitizedQuestion `json:"questions"`
	TotalAvailable int64               `json:"totalAvailable"`
	Requested      int                 `json:"requested"`
	Returned       int                 `json:"returned"`
}

// GenerateQuiz draws a random quiz of up to requestedCount questions from
// the categories given (empty means the whole bank). The draw is a single
// store call that returns however many questions actually exist, so a
// request larger than the pool degrades to "all available" and an empty
// pool yields an empty quiz, neither being an error.
func (s *QuizService) GenerateQuiz(categories []string, requestedCount int) (*QuizSet, error) {
	if requestedCount <= 0 {
		return nil, util.ErrInvalidQuestionCount
	}
	if requestedCount > s.Cfg.Quiz.MaxQuestionCount {
		requestedCount = s.Cfg.Quiz.MaxQuestionCount
	}

	questions, total, err := s.Store.SampleRandom(categories, requestedCount)
	if err != nil {
		return nil, err
	}

	sanitized := make([]SanitizedQuestion, len(questions))
	for i, q := range questions {
		opts := make([]SanitizedOption, len(q.Options))
		for j, o := range q.Options {
			opts[j] = SanitizedOption{ID: o.ID, Description: o.Description}
		}
		sanitized[i] = SanitizedQuestion{
			ID:          q.ID,
			Description: q.Description,
			Options:     opts,
			Category:    q.Category,
			Difficulty:  q.Difficulty,
		}
	}

	monitoring.QuizzesGenerated.Inc()

	return &QuizSet{
		Questions:      sanitized,
		TotalAvailable: total,
		Requested:      requestedCount,
		Returned:       len(sanitized),
	}, nil
}

type AnswerRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	SelectedOptionID string `json:"selectedOptionId" binding:"required"`
}

type QuizSubmissionRequest struct {
	Questions []string        `json:"questions" binding:"required"`
	Answers   []AnswerRequest `json:"answers"`
}

type VerdictStatus string

const (
	StatusCorrect     VerdictStatus = "correct"
	StatusIncorrect   VerdictStatus = "incorrect"
	StatusUnattempted VerdictStatus = "unattempted"
)

type OptionResult struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsCorrect   bool   `json:"isCorrect"`
}

type QuestionVerdict struct {
	QuestionID     string           `json:"questionId"`
	Description    string           `json:"description"`
	Options        []OptionResult   `json:"options"`
	Category       string           `json:"category"`
	Difficulty     model.Difficulty `json:"difficulty"`
	Status         VerdictStatus    `json:"status"`
	SelectedOption *SanitizedOption `json:"selectedOption"`
	CorrectOption  *OptionResult    `json:"correctOption"`
	Explanation    string           `json:"explanation"`
	IsCorrect      bool             `json:"isCorrect"`
}

type QuizSummary struct {
	TotalQuestions     int    `json:"totalQuestions"`
	AttemptedQuestions int    `json:"attemptedQuestions"`
	UnattemptedCount   int    `json:"unattemptedCount"`
	Score              int    `json:"score"`
	Percentage         int    `json:"percentage"`
	Feedback           string `json:"feedback"`
}

// swagger:model QuizResult
type QuizResult struct {
	Summary         QuizSummary                      `json:"summary"`
	CategoryStats   map[string]*StatBucket           `json:"categoryStats"`
	DifficultyStats map[model.Difficulty]*StatBucket `json:"difficultyStats"`
	Questions       []QuestionVerdict                `json:"questions"`
}

// GradeQuiz matches the submitted answers against the authoritative question
// data and produces per-question verdicts in the exact order the questions
// were presented, plus aggregate statistics. Grading is all-or-nothing: an
// unknown question id or an option id that does not belong to its question
// fails the whole call rather than returning a partial result.
func (s *QuizService) GradeQuiz(req QuizSubmissionRequest) (*QuizResult, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrEmptySubmission
	}

	// Index answers once so each question lookup is O(1).
	answerIndex := make(map[string]AnswerRequest, len(req.Answers))
	for _, a := range req.Answers {
		if _, seen := answerIndex[a.QuestionID]; seen {
			return nil, fmt.Errorf("%w %s", util.ErrDuplicateAnswer, a.QuestionID)
		}
		answerIndex[a.QuestionID] = a
	}

	fetched, err := s.Store.FindByIDs(req.Questions)
	if err != nil {
		return nil, err
	}
	questionIndex := make(map[string]*model.Question, len(fetched))
	for i := range fetched {
		questionIndex[fetched[i].ID] = &fetched[i]
	}

	score := 0
	verdicts := make([]QuestionVerdict, 0, len(req.Questions))

	for _, questionID := range req.Questions {
		question, ok := questionIndex[questionID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrQuestionNotFound, questionID)
		}

		verdict := QuestionVerdict{
			QuestionID:    question.ID,
			Description:   question.Description,
			Options:       optionResults(question.Options),
			Category:      question.Category,
			Difficulty:    question.Difficulty,
			CorrectOption: correctOption(question),
			Explanation:   question.Solution,
		}

		answer, attempted := answerIndex[questionID]
		if !attempted {
			verdict.Status = StatusUnattempted
			verdicts = append(verdicts, verdict)
			continue
		}

		selected := findOption(question.Options, answer.SelectedOptionID)
		if selected == nil {
			return nil, fmt.Errorf("%w for question %s", util.ErrInvalidOption, questionID)
		}

		verdict.SelectedOption = &SanitizedOption{ID: selected.ID, Description: selected.Description}
		verdict.IsCorrect = selected.IsCorrect
		if selected.IsCorrect {
			verdict.Status = StatusCorrect
			score++
		} else {
			verdict.Status = StatusIncorrect
		}

		verdicts = append(verdicts, verdict)
	}

	monitoring.QuizzesGraded.Inc()

	return &QuizResult{
		Summary:         buildSummary(verdicts, score),
		CategoryStats:   buildCategoryStats(verdicts),
		DifficultyStats: buildDifficultyStats(verdicts),
		Questions:       verdicts,
	}, nil
}

func optionResults(options []model.QuestionOption) []OptionResult {
	out := make([]OptionResult, len(options))
	for i, o := range options {
		out[i] = OptionResult{ID: o.ID, Description: o.Description, IsCorrect: o.IsCorrect}
	}
	return out
}

func findOption(options []model.QuestionOption, optionID string) *model.QuestionOption {
	for i := range options {
		if options[i].ID == optionID {
			return &options[i]
		}
	}
	return nil
}

// correctOption returns the first option marked correct. A question should
// carry exactly one; zero or several is corrupt bank data, reported but not
// fatal so grading can still complete.
func correctOption(question *model.Question) *OptionResult {
	var first *OptionResult
	count := 0
	for i := range question.Options {
		if question.Options[i].IsCorrect {
			count++
			if first == nil {
				o := question.Options[i]
				first = &OptionResult{ID: o.ID, Description: o.Description, IsCorrect: true}
			}
		}
	}
	if count != 1 {
		logger.Log.Warn("question has an unexpected number of correct options",
			zap.String("questionId", question.ID),
			zap.Int("correctOptions", count),
		)
	}
	return first
}
