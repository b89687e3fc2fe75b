package service

import (
	"math"
	"quizhub_backend/internal/model"
)

// StatBucket is a per-category or per-difficulty performance rollup.
type StatBucket struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Percentage float64 `json:"percentage"`
}

func (b *StatBucket) add(status VerdictStatus) {
	b.Total++
	switch status {
	case StatusCorrect:
		b.Correct++
	case StatusIncorrect:
		b.Incorrect++
	}
	b.Percentage = float64(b.Correct) / float64(b.Total) * 100
}

// buildSummary computes the attempt totals and the rounded percentage over
// attempted questions. Zero attempts yields 0%, not a division by zero.
func buildSummary(verdicts []QuestionVerdict, score int) QuizSummary {
	attempted := 0
	for _, v := range verdicts {
		if v.Status != StatusUnattempted {
			attempted++
		}
	}

	percentage := 0
	if attempted > 0 {
		percentage = int(math.Round(float64(score) / float64(attempted) * 100))
	}

	return QuizSummary{
		TotalQuestions:     len(verdicts),
		AttemptedQuestions: attempted,
		UnattemptedCount:   len(verdicts) - attempted,
		Score:              score,
		Percentage:         percentage,
		Feedback:           feedbackFor(percentage),
	}
}

// feedbackFor picks the message tier for a percentage. Thresholds are
// inclusive lower bounds checked top-down, first match wins.
func feedbackFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent! You are a master!"
	case percentage >= 75:
		return "Great job! You have a good understanding."
	case percentage >= 50:
		return "Not bad! Keep practicing to improve."
	case percentage >= 25:
		return "You need more practice. Review the explanations."
	default:
		return "You might want to review the basics first."
	}
}

func buildCategoryStats(verdicts []QuestionVerdict) map[string]*StatBucket {
	stats := make(map[string]*StatBucket)
	for _, v := range verdicts {
		bucket, ok := stats[v.Category]
		if !ok {
			bucket = &StatBucket{}
			stats[v.Category] = bucket
		}
		bucket.add(v.Status)
	}
	return stats
}

// buildDifficultyStats always returns all three buckets, zeroed when no
// question of that difficulty occurred.
func buildDifficultyStats(verdicts []QuestionVerdict) map[model.Difficulty]*StatBucket {
	stats := map[model.Difficulty]*StatBucket{
		model.Easy:   {},
		model.Medium: {},
		model.Hard:   {},
	}
	for _, v := range verdicts {
		if bucket, ok := stats[v.Difficulty]; ok {
			bucket.add(v.Status)
		}
	}
	return stats
}
