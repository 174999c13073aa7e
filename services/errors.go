package services

import "errors"

// Service-level errors. Handlers map these onto HTTP statuses; everything
// else is treated as an internal failure.
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrPersonExists   = errors.New("person with this name already exists")
	ErrInvalidInput   = errors.New("invalid input")
)
