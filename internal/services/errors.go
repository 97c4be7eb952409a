package services

import "errors"

// Errors raised by the to-do service and its stores. Handlers map these
// onto HTTP status codes; anything else is an adapter failure and
// surfaces as an internal error.
var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrNotOwner        = errors.New("todo belongs to another user")
	ErrEmptyName       = errors.New("todo name must not be empty")
	ErrVersionConflict = errors.New("todo was modified by another request")
	ErrTodoExists      = errors.New("todo already exists")
)
