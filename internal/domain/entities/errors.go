package entities

import (
	"fmt"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// InsufficientDataError means an hourly array is shorter than the window
// the aggregator needs.
type InsufficientDataError struct {
	Field    string
	Got      int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient forecast data: %s has %d entries, need at least %d", e.Field, e.Got, e.Required)
}

// MalformedResponseError means a provider payload lacks an expected field or
// cannot be decoded.
type MalformedResponseError struct {
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed response: missing %s", e.Field)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

type LocationNotFoundError struct {
	Query string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location not found: %q", e.Query)
}

// PermissionDeniedError is raised when the client could not supply its
// position. The location resolver absorbs it by falling back to the default
// city.
type PermissionDeniedError struct {
	Reason string
	// Unsupported is set when the client has no geolocation at all, as
	// opposed to the user refusing it.
	Unsupported bool
}

func (e *PermissionDeniedError) Error() string {
	if e.Unsupported {
		return "geolocation not supported"
	}
	if e.Reason == "" {
		return "geolocation permission denied"
	}
	return "geolocation permission denied: " + e.Reason
}
