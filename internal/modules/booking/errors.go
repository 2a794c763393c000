package booking

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrNotAvailable       = errors.New("workstation not available")
	ErrOverbooking        = errors.New("overbooking constraint violation")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrAlreadyCompleted   = errors.New("booking already completed")
	ErrPriceNotConfigured = errors.New("workstation price not configured")
)
