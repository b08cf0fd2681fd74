package domain

import "errors"

var (
	// ErrImageUnavailable is returned when neither the local nor the remote
	// copy of an image asset could be read, or the bytes do not decode.
	ErrImageUnavailable = errors.New("image unavailable")

	// ErrNoData is returned when a filter leaves nothing to aggregate.
	ErrNoData = errors.New("no data for selection")

	// ErrUnknownChart is returned for a chart name the service cannot render.
	ErrUnknownChart = errors.New("unknown chart")
)
