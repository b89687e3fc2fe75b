package service_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"testing"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// memoryStore is an in-memory QuestionStore with seeded randomness so the
// sampling tests are reproducible.
type memoryStore struct {
	questions []model.Question
	rnd       *rand.Rand
}

func newMemoryStore(questions []model.Question) *memoryStore {
	return &memoryStore{
		questions: questions,
		rnd:       rand.New(rand.NewSource(42)),
	}
}

func (m *memoryStore) FindByIDs(ids []string) ([]model.Question, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []model.Question
	for _, q := range m.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) SampleRandom(categories []string, n int) ([]model.Question, int64, error) {
	filter := make(map[string]bool, len(categories))
	for _, c := range categories {
		filter[c] = true
	}

	var pool []model.Question
	for _, q := range m.questions {
		if len(filter) == 0 || filter[q.Category] {
			pool = append(pool, q)
		}
	}

	total := int64(len(pool))
	m.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n], total, nil
}

func newTestService(questions []model.Question) *service.QuizService {
	cfg := &config.Config{}
	cfg.Quiz.DefaultQuestionCount = 10
	cfg.Quiz.MaxQuestionCount = 50
	return service.NewQuizService(newMemoryStore(questions), cfg)
}

// makeQuestion builds a four-option question whose correct option is
// <id>-o<correct>.
func makeQuestion(id, category string, difficulty model.Difficulty, correct int) model.Question {
	q := model.Question{
		Description: "question " + id,
		Solution:    "solution " + id,
		Difficulty:  difficulty,
		Category:    category,
	}
	q.ID = id
	for i := 1; i <= 4; i++ {
		opt := model.QuestionOption{
			Description: fmt.Sprintf("option %d", i),
			IsCorrect:   i == correct,
		}
		opt.ID = fmt.Sprintf("%s-o%d", id, i)
		q.Options = append(q.Options, opt)
	}
	return q
}

func makeBank(size int) []model.Question {
	categories := []string{"Math", "Physics", "Biology"}
	difficulties := []model.Difficulty{model.Easy, model.Medium, model.Hard}
	bank := make([]model.Question, size)
	for i := 0; i < size; i++ {
		bank[i] = makeQuestion(
			fmt.Sprintf("q%d", i+1),
			categories[i%len(categories)],
			difficulties[i%len(difficulties)],
			1,
		)
	}
	return bank
}

func TestGenerateQuizCardinality(t *testing.T) {
	svc := newTestService(makeBank(9))

	quiz, err := svc.GenerateQuiz([]string{"Math"}, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if quiz.Returned != 2 || len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if quiz.TotalAvailable != 3 {
		t.Fatalf("expected 3 available Math questions, got %d", quiz.TotalAvailable)
	}

	seen := make(map[string]bool)
	for _, q := range quiz.Questions {
		if q.Category != "Math" {
			t.Fatalf("question %s outside category filter: %s", q.ID, q.Category)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question %s in draw", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestGenerateQuizRequestExceedsPool(t *testing.T) {
	bank := []model.Question{
		makeQuestion("q1", "Math", model.Easy, 1),
		makeQuestion("q2", "Physics", model.Medium, 2),
		makeQuestion("q3", "Biology", model.Hard, 3),
	}
	svc := newTestService(bank)

	quiz, err := svc.GenerateQuiz(nil, 5)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if quiz.TotalAvailable != 3 {
		t.Fatalf("expected totalAvailable=3, got %d", quiz.TotalAvailable)
	}
	if quiz.Requested != 5 {
		t.Fatalf("expected requested=5, got %d", quiz.Requested)
	}
	if quiz.Returned != 3 || len(quiz.Questions) != 3 {
		t.Fatalf("expected all 3 questions, got %d", len(quiz.Questions))
	}
}

func TestGenerateQuizEmptyPool(t *testing.T) {
	svc := newTestService(makeBank(6))

	quiz, err := svc.GenerateQuiz([]string{"History"}, 5)
	if err != nil {
		t.Fatalf("empty pool must not be an error: %v", err)
	}
	if quiz.TotalAvailable != 0 || quiz.Returned != 0 || len(quiz.Questions) != 0 {
		t.Fatalf("expected empty quiz, got %+v", quiz)
	}
}

func TestGenerateQuizRejectsNonPositiveCount(t *testing.T) {
	svc := newTestService(makeBank(6))

	for _, count := range []int{0, -3} {
		_, err := svc.GenerateQuiz(nil, count)
		if !errors.Is(err, util.ErrInvalidQuestionCount) {
			t.Fatalf("count=%d: expected ErrInvalidQuestionCount, got %v", count, err)
		}
	}
}

func TestGenerateQuizSanitization(t *testing.T) {
	svc := newTestService(makeBank(6))

	quiz, err := svc.GenerateQuiz(nil, 6)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	encoded, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(strings.ToLower(string(encoded)), "iscorrect") {
		t.Fatalf("sampler output leaks correctness marker: %s", encoded)
	}
}

func TestGenerateQuizUniformity(t *testing.T) {
	const (
		poolSize = 10
		drawSize = 3
		trials   = 6000
	)
	svc := newTestService(makeBank(poolSize))

	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		quiz, err := svc.GenerateQuiz(nil, drawSize)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		for _, q := range quiz.Questions {
			counts[q.ID]++
		}
	}

	expected := float64(drawSize) / float64(poolSize)
	for id, count := range counts {
		freq := float64(count) / float64(trials)
		if freq < expected-0.05 || freq > expected+0.05 {
			t.Errorf("question %s selected with frequency %.3f, expected %.3f±0.05", id, freq, expected)
		}
	}
	if len(counts) != poolSize {
		t.Errorf("only %d of %d questions ever selected", len(counts), poolSize)
	}
}

func TestGradeQuizCorrectAnswer(t *testing.T) {
	q := makeQuestion("qx", "Math", model.Easy, 2)
	svc := newTestService([]model.Question{q})

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"qx"},
		Answers:   []service.AnswerRequest{{QuestionID: "qx", SelectedOptionID: "qx-o2"}},
	})
	if err != nil {
		t.Fatalf("grade failed: %v", err)
	}

	verdict := result.Questions[0]
	if verdict.Status != service.StatusCorrect || !verdict.IsCorrect {
		t.Fatalf("expected correct verdict, got %+v", verdict)
	}
	if verdict.SelectedOption == nil || verdict.SelectedOption.ID != "qx-o2" {
		t.Fatalf("unexpected selected option: %+v", verdict.SelectedOption)
	}
	if verdict.CorrectOption == nil || verdict.CorrectOption.ID != "qx-o2" {
		t.Fatalf("unexpected correct option: %+v", verdict.CorrectOption)
	}
	if verdict.Explanation != "solution qx" {
		t.Fatalf("unexpected explanation: %q", verdict.Explanation)
	}

	if result.Summary.Score != 1 || result.Summary.Percentage != 100 {
		t.Fatalf("expected score 1 and 100%%, got %+v", result.Summary)
	}
	if result.Summary.Feedback != "Excellent! You are a master!" {
		t.Fatalf("unexpected feedback: %q", result.Summary.Feedback)
	}
}

func TestGradeQuizUnattempted(t *testing.T) {
	q := makeQuestion("qx", "Math", model.Easy, 2)
	svc := newTestService([]model.Question{q})

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"qx"},
	})
	if err != nil {
		t.Fatalf("grade failed: %v", err)
	}

	verdict := result.Questions[0]
	if verdict.Status != service.StatusUnattempted || verdict.IsCorrect {
		t.Fatalf("expected unattempted verdict, got %+v", verdict)
	}
	if verdict.SelectedOption != nil {
		t.Fatalf("unattempted verdict must carry no selection, got %+v", verdict.SelectedOption)
	}

	s := result.Summary
	if s.AttemptedQuestions != 0 || s.UnattemptedCount != 1 || s.TotalQuestions != 1 {
		t.Fatalf("unexpected attempt accounting: %+v", s)
	}
	if s.Percentage != 0 {
		t.Fatalf("zero attempts must yield 0%%, got %d", s.Percentage)
	}
}

func TestGradeQuizInvalidOption(t *testing.T) {
	q := makeQuestion("qx", "Math", model.Easy, 2)
	svc := newTestService([]model.Question{q})

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"qx"},
		Answers:   []service.AnswerRequest{{QuestionID: "qx", SelectedOptionID: "not-an-option"}},
	})
	if !errors.Is(err, util.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if result != nil {
		t.Fatalf("failed grading must not return a partial result")
	}
}

func TestGradeQuizUnknownQuestion(t *testing.T) {
	svc := newTestService(makeBank(3))

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"q1", "missing"},
		Answers:   []service.AnswerRequest{{QuestionID: "q1", SelectedOptionID: "q1-o1"}},
	})
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if result != nil {
		t.Fatalf("failed grading must not return a partial result")
	}
}

func TestGradeQuizDuplicateAnswer(t *testing.T) {
	svc := newTestService(makeBank(3))

	_, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"q1"},
		Answers: []service.AnswerRequest{
			{QuestionID: "q1", SelectedOptionID: "q1-o1"},
			{QuestionID: "q1", SelectedOptionID: "q1-o2"},
		},
	})
	if !errors.Is(err, util.ErrDuplicateAnswer) {
		t.Fatalf("expected ErrDuplicateAnswer, got %v", err)
	}
}

func TestGradeQuizEmptySubmission(t *testing.T) {
	svc := newTestService(makeBank(3))

	_, err := svc.GradeQuiz(service.QuizSubmissionRequest{})
	if !errors.Is(err, util.ErrEmptySubmission) {
		t.Fatalf("expected ErrEmptySubmission, got %v", err)
	}
}

func TestGradeQuizOrderPreservation(t *testing.T) {
	svc := newTestService(makeBank(6))

	submitted := []string{"q4", "q1", "q6", "q2", "q5", "q3"}
	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: submitted,
		Answers: []service.AnswerRequest{
			{QuestionID: "q6", SelectedOptionID: "q6-o1"},
			{QuestionID: "q2", SelectedOptionID: "q2-o3"},
		},
	})
	if err != nil {
		t.Fatalf("grade failed: %v", err)
	}

	if len(result.Questions) != len(submitted) {
		t.Fatalf("expected %d verdicts, got %d", len(submitted), len(result.Questions))
	}
	for i, id := range submitted {
		if result.Questions[i].QuestionID != id {
			t.Fatalf("verdict %d is %s, expected %s", i, result.Questions[i].QuestionID, id)
		}
	}
}

func TestGradeQuizStatsConsistency(t *testing.T) {
	bank := makeBank(9)
	svc := newTestService(bank)

	submitted := make([]string, len(bank))
	for i, q := range bank {
		submitted[i] = q.ID
	}

	// Correct answers for q1-q3, wrong for q4-q6, q7-q9 unattempted.
	answers := []service.AnswerRequest{
		{QuestionID: "q1", SelectedOptionID: "q1-o1"},
		{QuestionID: "q2", SelectedOptionID: "q2-o1"},
		{QuestionID: "q3", SelectedOptionID: "q3-o1"},
		{QuestionID: "q4", SelectedOptionID: "q4-o2"},
		{QuestionID: "q5", SelectedOptionID: "q5-o2"},
		{QuestionID: "q6", SelectedOptionID: "q6-o2"},
	}

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{Questions: submitted, Answers: answers})
	if err != nil {
		t.Fatalf("grade failed: %v", err)
	}

	s := result.Summary
	if s.Score != 3 || s.AttemptedQuestions != 6 || s.UnattemptedCount != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.AttemptedQuestions+s.UnattemptedCount != s.TotalQuestions {
		t.Fatalf("attempt accounting broken: %+v", s)
	}
	if s.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", s.Percentage)
	}
	if s.Feedback != "Not bad! Keep practicing to improve." {
		t.Fatalf("unexpected feedback: %q", s.Feedback)
	}

	categoryCorrect := 0
	for _, bucket := range result.CategoryStats {
		categoryCorrect += bucket.Correct
	}
	if categoryCorrect != s.Score {
		t.Fatalf("category correct sum %d != score %d", categoryCorrect, s.Score)
	}

	for _, difficulty := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		if _, ok := result.DifficultyStats[difficulty]; !ok {
			t.Fatalf("difficulty bucket %s missing", difficulty)
		}
	}
	difficultyTotal := 0
	for _, bucket := range result.DifficultyStats {
		difficultyTotal += bucket.Total
	}
	if difficultyTotal != s.TotalQuestions {
		t.Fatalf("difficulty totals %d != total questions %d", difficultyTotal, s.TotalQuestions)
	}
}

func TestGradeQuizCorruptCorrectOptions(t *testing.T) {
	// Two options marked correct: first one wins, grading completes.
	multi := makeQuestion("multi", "Math", model.Easy, 1)
	multi.Options[2].IsCorrect = true

	// No option marked correct: no correctOption, answers grade incorrect.
	none := makeQuestion("none", "Math", model.Easy, 1)
	none.Options[0].IsCorrect = false

	svc := newTestService([]model.Question{multi, none})

	result, err := svc.GradeQuiz(service.QuizSubmissionRequest{
		Questions: []string{"multi", "none"},
		Answers: []service.AnswerRequest{
			{QuestionID: "multi", SelectedOptionID: "multi-o3"},
			{QuestionID: "none", SelectedOptionID: "none-o1"},
		},
	})
	if err != nil {
		t.Fatalf("corrupt bank data must not fail grading: %v", err)
	}

	if result.Questions[0].CorrectOption == nil || result.Questions[0].CorrectOption.ID != "multi-o1" {
		t.Fatalf("expected first correct option to win, got %+v", result.Questions[0].CorrectOption)
	}
	if result.Questions[0].Status != service.StatusCorrect {
		t.Fatalf("option marked correct must still grade correct, got %s", result.Questions[0].Status)
	}

	if result.Questions[1].CorrectOption != nil {
		t.Fatalf("expected nil correct option, got %+v", result.Questions[1].CorrectOption)
	}
	if result.Questions[1].Status != service.StatusIncorrect {
		t.Fatalf("expected incorrect verdict, got %s", result.Questions[1].Status)
	}
}
