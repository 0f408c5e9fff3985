package store

import "errors"

var (
	// ErrUnauthorized means the upstream rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTodoNotFound means the id is absent from the user's bucket.
	ErrTodoNotFound = errors.New("todo not found")
)
