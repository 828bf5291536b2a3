// Package common defines shared constants and sentinel errors used across
// the contact book layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Directory errors.
	ErrorAlreadyExists      = errors.New("already exists")
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Validation errors (form input).
	ErrorValidation = errors.New("validation error")

	// Wiring / format errors.
	ErrorUnsupportedBackend = errors.New("unsupported store backend")
	ErrorUnsupportedFormat  = errors.New("unsupported export format")

	// Photo errors.
	ErrorImageTooLarge = errors.New("image too large")
	ErrorNotAnImage    = errors.New("file is not a supported image")

	// Navigation errors.
	ErrorTooManyRedirects = errors.New("too many redirects")
)
