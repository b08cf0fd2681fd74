package usecases

import "errors"

// ErrInvalidRange is returned when a date parameter cannot be parsed.
var ErrInvalidRange = errors.New("invalid date range")
