package service

import "errors"

// Error categories. Specific conditions below wrap one of these so HTTP
// handlers can map with a single errors.Is switch, and tests can assert
// the category without caring about the exact condition.
var (
	ErrInvalid   = errors.New("invalid input")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	ErrExpired   = errors.New("expired")
)
