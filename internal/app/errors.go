package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for service errors.
var (
	// ErrValidation is the kind shared by all user-input errors. No record is
	// written when a submission fails validation.
	ErrValidation = errors.New("validation failed")

	ErrInvalidScore = fmt.Errorf("%w: invalid score", ErrValidation)
	ErrMissingName  = fmt.Errorf("%w: missing student name", ErrValidation)

	ErrNotStarted = errors.New("service not started")
)
