package catalog

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrManagerNotApproved = errors.New("manager not approved")
	ErrFloorNotEmpty      = errors.New("floor has active workstations")
	ErrPositionTaken      = errors.New("grid position already occupied")
)
