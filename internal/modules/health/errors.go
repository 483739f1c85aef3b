package health

import "errors"

var (
	ErrInvalidMetric   = errors.New("unknown metric type")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidValue    = errors.New("invalid metric value")
	ErrInvalidTarget   = errors.New("goal target must be positive")
	ErrDataUnavailable = errors.New("health data unavailable")
	ErrNotFound        = errors.New("not found")
)
