package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrUSNRegistered    = errors.New("usn already registered")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidExamIndex = errors.New("exam index must be between 1 and 3")
	ErrInvalidThreshold = errors.New("threshold must be between 1 and 10")
	ErrInvalidTopK      = errors.New("topK must be between 1 and 20")
	ErrInvalidCFWeight  = errors.New("cfWeight must be between 0 and 1")
	ErrInvalidStudyDays = errors.New("studyDays must be between 1 and 30")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// IsValidationError reports whether err is one of the request-validation
// errors that must surface as a 400 instead of a 500.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidExamIndex),
		errors.Is(err, ErrInvalidThreshold),
		errors.Is(err, ErrInvalidTopK),
		errors.Is(err, ErrInvalidCFWeight),
		errors.Is(err, ErrInvalidStudyDays),
		errors.Is(err, ErrInvalidRating):
		return true
	}
	return false
}
