package domain

import "errors"

var (
	ErrNotFound      = errors.New("gig not found")
	ErrForbidden     = errors.New("user not authorized to perform this action")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)
