package chat

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("group not found")
	ErrNotMember     = errors.New("not a group member")
	ErrAlreadyMember = errors.New("already a group member")
)
