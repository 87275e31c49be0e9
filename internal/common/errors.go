package common

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across services. Handlers translate them to HTTP
// statuses via StatusForError; services wrap them with context using fmt.Errorf
// and %w.
var (
	// ErrInvalidInput covers malformed or missing source descriptors, bad
	// URLs, bad base64, wrong content types and oversized payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden means the caller lacks the admin capability.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage means an object store put failed. Deletes inside cleanup
	// paths are non-fatal and never carry this error.
	ErrStorage = errors.New("storage error")
)

// StatusForError maps a service error to an HTTP status code.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
