package market

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("listing not found")
	ErrNotSeller  = errors.New("not the seller of this listing")
)
