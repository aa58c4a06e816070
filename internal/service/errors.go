package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
)

// Session errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Form and question errors
var (
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNotAvailable = errors.New("form is not published or inactive")
	ErrQuestionInvalid  = errors.New("invalid question")
	ErrQuestionNotFound = errors.New("question not found")
)

// Response errors
var (
	ErrAnswersRequired     = errors.New("answers are required")
	ErrMissingRequired     = errors.New("required questions are unanswered")
	ErrDuplicateSubmission = errors.New("you have already submitted a response to this form")
)

// Quiz errors
var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrAccessCodeTaken      = errors.New("access code already in use")
	ErrInvalidCorrectAnswer = errors.New("correct answer does not match any option")
)

// File errors
var (
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// Billing errors
var (
	ErrActiveSubscription = errors.New("user already has an active subscription")
)

// MissingAnswersError lists the required questions left unanswered
type MissingAnswersError struct {
	QuestionIDs []string
}

func (e *MissingAnswersError) Error() string {
	return ErrMissingRequired.Error()
}

// Unwrap lets errors.Is match ErrMissingRequired
func (e *MissingAnswersError) Unwrap() error {
	return ErrMissingRequired
}
