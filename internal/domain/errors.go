package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by stores
// and services to communicate domain-specific error conditions.
// -----------------------------------------------------------------------------

// Activity record validation errors
var (
	ErrMissingUserID          = errors.New("user id is required")
	ErrMissingSubject         = errors.New("subject is required")
	ErrMissingTopic           = errors.New("topic is required")
	ErrInvalidDifficulty      = errors.New("invalid difficulty")
	ErrPerformanceOutOfRange  = errors.New("performance must be between 0 and 100")
	ErrNegativeTimeSpent      = errors.New("time spent must not be negative")
	ErrInvalidAttempts        = errors.New("attempts must be at least 1")
	ErrNegativeQuestionCount  = errors.New("question counts must not be negative")
	ErrAnswersExceedQuestions = errors.New("correct answers exceed total questions")
)

// Preferences errors
var (
	ErrPreferencesNotFound = errors.New("preferences not found")
)

// IsValidationError reports whether err is one of the activity record
// validation errors. Callers use this to distinguish rejected input
// from storage failures.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingUserID,
		ErrMissingSubject,
		ErrMissingTopic,
		ErrInvalidDifficulty,
		ErrPerformanceOutOfRange,
		ErrNegativeTimeSpent,
		ErrInvalidAttempts,
		ErrNegativeQuestionCount,
		ErrAnswersExceedQuestions,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
