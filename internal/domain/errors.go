package domain

import "errors"

var (
	// ErrInvalidQuery signals a blank or whitespace-only search query.
	ErrInvalidQuery = errors.New("query cannot be empty")
	// ErrValidation signals malformed request input.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingUnavailable signals an embedding provider failure.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrRetrievalUnavailable signals an unreachable candidate store.
	ErrRetrievalUnavailable = errors.New("candidate retrieval unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden signals access to a resource the caller does not own.
	ErrForbidden = errors.New("not authorized")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
