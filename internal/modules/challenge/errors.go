package challenge

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("challenge not found")
	ErrAlreadyJoined = errors.New("already joined this challenge")
	ErrNotJoined     = errors.New("not a participant of this challenge")
)
