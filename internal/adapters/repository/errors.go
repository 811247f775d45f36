package repository

import (
	"errors"

	"github.com/okian/studytrack/internal/domain/model"
)

// Sentinel kinds for repository errors.
var (
	ErrNotFound = model.ErrNotFound
	ErrStore    = errors.New("history store failed")
	ErrClosed   = errors.New("history store closed")
)
