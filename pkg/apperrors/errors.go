package apperrors

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)
