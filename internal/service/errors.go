package service

import (
	"errors"
	"strings"
)

var (
	ErrForbidden         = errors.New("forbidden: user does not have permission for this action")
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrVolunteerNotFound = errors.New("volunteer not found")
)

// StateError reports a request that is well formed but not allowed in the
// current state of the profile workflow. Two StateErrors match under errors.Is
// when their codes are equal.
type StateError struct {
	Code    string
	Message string
	Missing []string
}

func (e *StateError) Error() string {
	return e.Message
}

func (e *StateError) Is(target error) bool {
	t, ok := target.(*StateError)
	return ok && t.Code == e.Code
}

var (
	ErrStep1Required     = &StateError{Code: "step1_required", Message: "complete step 1 first"}
	ErrProfileNotFound   = &StateError{Code: "profile_not_found", Message: "profile not found, complete step 1 first"}
	ErrAlreadySubmitted  = &StateError{Code: "already_submitted", Message: "profile already submitted"}
	ErrProfileIncomplete = &StateError{Code: "profile_incomplete", Message: "profile is incomplete"}
)

func incompleteError(missing []string) *StateError {
	return &StateError{
		Code:    ErrProfileIncomplete.Code,
		Message: "profile is incomplete, missing: " + strings.Join(missing, ", "),
		Missing: missing,
	}
}
