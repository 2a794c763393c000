package admin

import "errors"

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidState = errors.New("invalid state for this operation")
	ErrValidation   = errors.New("validation error")
)
