package repository

import "errors"

var (
	// ErrOverlap is returned when an insert would double-book a workstation.
	// Raised by the transactional re-check and, on PostgreSQL, by the
	// no-overlap exclusion constraint.
	ErrOverlap = errors.New("booking interval overlaps an existing booking")

	// ErrDiscountExhausted is returned when a discount hits its usage limit
	// between pricing and persist; the caller re-prices without it.
	ErrDiscountExhausted = errors.New("discount usage limit reached")

	ErrFloorNotEmpty = errors.New("floor still has active workstations")
)
