package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidQuestionCount = errors.New("question count must be a positive integer")
	ErrInvalidOption        = errors.New("invalid option selected")
	ErrDuplicateAnswer      = errors.New("duplicate answer for question")
	ErrEmptySubmission      = errors.New("questions array is required")
)
