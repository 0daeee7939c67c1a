package diagnosis

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigurationError means the upstream credential is missing. It is
// captured once at startup and returned for every request.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured", e.Setting)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

type FormatKind string

const (
	FormatKindUnparseable FormatKind = "unparseable"
	FormatKindSchema      FormatKind = "schema"
	FormatKindEmpty       FormatKind = "empty"
)

// UpstreamFormatError means the model replied but the reply is not a usable
// diagnosis. Excerpt is set for unparseable replies and is already bounded.
type UpstreamFormatError struct {
	Kind    FormatKind
	Excerpt string
	Err     error
}

func (e *UpstreamFormatError) Error() string {
	switch e.Kind {
	case FormatKindUnparseable:
		return fmt.Sprintf("Failed to parse AI response: %s", e.Excerpt)
	case FormatKindEmpty:
		return fmt.Sprintf("Empty AI response: %v", e.Err)
	default:
		return fmt.Sprintf("Invalid AI response: %v", e.Err)
	}
}

func (e *UpstreamFormatError) Unwrap() error { return e.Err }

// UpstreamServiceError means the call to the provider itself failed.
type UpstreamServiceError struct {
	Err error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("AI service error: %v", e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("Unexpected error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// StatusCode maps a Diagnose error to the HTTP status reported to callers.
func StatusCode(err error) int {
	var formatErr *UpstreamFormatError
	var serviceErr *UpstreamServiceError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &formatErr), errors.As(err, &serviceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
