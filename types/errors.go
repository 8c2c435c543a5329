package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the document service has no document
	// for the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedFormat is returned when extraction input is empty or
	// does not look like the expected file format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrCorruptFile is returned when the input has the right magic bytes
	// but cannot be parsed.
	ErrCorruptFile = errors.New("corrupt file")
)

// ConfigurationError reports a missing or invalid configuration value. It is
// raised at construction time, before any network call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// RequestFailedError carries the status code and raw body of a non-success
// response from an external service. The transport layer does not retry.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed: %d - %s", e.StatusCode, e.Body)
}

// SchemaParseError is returned when a model response does not conform to the
// caller-supplied output schema. Raw keeps the unmodified model output so the
// caller can diagnose without re-querying.
type SchemaParseError struct {
	Raw   string
	Cause error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("response does not match output schema: %v", e.Cause)
}

func (e *SchemaParseError) Unwrap() error { return e.Cause }

// UnsupportedModelOptionError is returned when a per-call option is not
// supported by the selected model, e.g. custom dimensions on an embedding
// model without reduced-dimension support.
type UnsupportedModelOptionError struct {
	Model  string
	Option string
}

func (e *UnsupportedModelOptionError) Error() string {
	return fmt.Sprintf("model %s does not support option %s", e.Model, e.Option)
}
