package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	// ErrCommitFailed hides the cause of a rolled back commit from callers.
	ErrCommitFailed = errors.New("order could not be placed, please try again")
)

// MissingFieldError names a required shipping field that was blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field '%s' is required", e.Field)
}
