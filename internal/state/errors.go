package state

import "errors"

// Sentinel errors for shift-context mutations.
var (
	ErrInvalidShift     = errors.New("invalid shift window: end_at must be after start_at")
	ErrDuplicatePatient = errors.New("patient ids must be unique")
	ErrUnknownPatient   = errors.New("unknown patient id")
	ErrDuplicateOrder   = errors.New("order id already exists")
	ErrOrderNotFound    = errors.New("order not found")
	ErrShiftNotSet      = errors.New("shift not set")
)
