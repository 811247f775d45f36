package model

import "errors"

// ErrNotFound reports that no record exists for a student name.
var ErrNotFound = errors.New("record not found")
