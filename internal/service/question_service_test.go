package service_test

import (
	"quizhub_backend/internal/service"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func validQuestionRequest() service.QuestionRequest {
	return service.QuestionRequest{
		Description: "What is 2+2?",
		Options: []service.QuestionOptionRequest{
			{Description: "3", IsCorrect: boolPtr(false)},
			{Description: "4", IsCorrect: boolPtr(true)},
			{Description: "5", IsCorrect: boolPtr(false)},
		},
		Solution:   "Basic addition.",
		Difficulty: "easy",
		Category:   "Math",
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*service.QuestionRequest)
		wantErr bool
	}{
		{"valid", func(r *service.QuestionRequest) {}, false},
		{"no correct option", func(r *service.QuestionRequest) {
			r.Options[1].IsCorrect = boolPtr(false)
		}, true},
		{"two correct options", func(r *service.QuestionRequest) {
			r.Options[0].IsCorrect = boolPtr(true)
		}, true},
		{"invalid difficulty", func(r *service.QuestionRequest) {
			r.Difficulty = "extreme"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validQuestionRequest()
			tt.mutate(&req)
			err := service.ValidateQuestion(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
