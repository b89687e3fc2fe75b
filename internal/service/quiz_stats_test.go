package service

import (
	"quizhub_backend/internal/model"
	"testing"
)

func TestFeedbackTiers(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{100, "Excellent! You are a master!"},
		{90, "Excellent! You are a master!"},
		{89, "Great job! You have a good understanding."},
		{75, "Great job! You have a good understanding."},
		{74, "Not bad! Keep practicing to improve."},
		{50, "Not bad! Keep practicing to improve."},
		{49, "You need more practice. Review the explanations."},
		{25, "You need more practice. Review the explanations."},
		{24, "You might want to review the basics first."},
		{0, "You might want to review the basics first."},
	}

	for _, tt := range tests {
		if got := feedbackFor(tt.percentage); got != tt.want {
			t.Errorf("feedbackFor(%d) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}

func TestBuildSummaryRounding(t *testing.T) {
	verdicts := []QuestionVerdict{
		{Status: StatusCorrect},
		{Status: StatusIncorrect},
		{Status: StatusIncorrect},
	}

	s := buildSummary(verdicts, 1)
	if s.Percentage != 33 {
		t.Fatalf("expected 1/3 to round to 33, got %d", s.Percentage)
	}

	s = buildSummary([]QuestionVerdict{
		{Status: StatusCorrect},
		{Status: StatusCorrect},
		{Status: StatusIncorrect},
	}, 2)
	if s.Percentage != 67 {
		t.Fatalf("expected 2/3 to round to 67, got %d", s.Percentage)
	}
}

func TestBuildSummaryZeroAttempts(t *testing.T) {
	verdicts := []QuestionVerdict{
		{Status: StatusUnattempted},
		{Status: StatusUnattempted},
	}

	s := buildSummary(verdicts, 0)
	if s.Percentage != 0 {
		t.Fatalf("zero attempts must yield 0%%, got %d", s.Percentage)
	}
	if s.AttemptedQuestions != 0 || s.UnattemptedCount != 2 || s.TotalQuestions != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestBuildCategoryStats(t *testing.T) {
	verdicts := []QuestionVerdict{
		{Category: "Math", Status: StatusCorrect},
		{Category: "Math", Status: StatusIncorrect},
		{Category: "Physics", Status: StatusUnattempted},
		{Category: "Math", Status: StatusCorrect},
	}

	stats := buildCategoryStats(verdicts)

	math := stats["Math"]
	if math == nil || math.Total != 3 || math.Correct != 2 || math.Incorrect != 1 {
		t.Fatalf("unexpected Math bucket: %+v", math)
	}
	if math.Percentage < 66.6 || math.Percentage > 66.7 {
		t.Fatalf("unexpected Math percentage: %f", math.Percentage)
	}

	physics := stats["Physics"]
	if physics == nil || physics.Total != 1 || physics.Correct != 0 || physics.Incorrect != 0 {
		t.Fatalf("unattempted must count toward total only: %+v", physics)
	}
}

func TestBuildDifficultyStatsAlwaysThreeBuckets(t *testing.T) {
	stats := buildDifficultyStats([]QuestionVerdict{
		{Difficulty: model.Easy, Status: StatusCorrect},
	})

	if len(stats) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(stats))
	}
	for _, difficulty := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		if _, ok := stats[difficulty]; !ok {
			t.Fatalf("bucket %s missing", difficulty)
		}
	}
	if stats[model.Medium].Total != 0 || stats[model.Medium].Percentage != 0 {
		t.Fatalf("empty bucket must stay zeroed: %+v", stats[model.Medium])
	}
}
