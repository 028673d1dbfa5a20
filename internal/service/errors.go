package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFormat is returned when a document has a file extension
	// outside the ingestion allow-list. It is raised before extraction runs.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed is returned when text extraction from a document fails.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrBackendUnavailable is returned when a configured backend (the vector
	// store) cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrExternalService is returned when an external API call (embeddings)
	// fails.
	ErrExternalService = errors.New("external service error")
)

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
