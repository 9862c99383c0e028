package alma

import (
	"errors"
	"fmt"
)

// NoErrorMessage is reported when a business error response carries no
// extractable error message.
const NoErrorMessage = "no error message available"

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid alma configuration")
)

// TransportError indicates the HTTP call itself failed (connection
// refused, timeout, DNS). Never retried.
type TransportError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("alma transport error calling %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError indicates an HTTP 5xx response, or a nominally successful
// response whose body was empty.
type ServerError struct {
	Status int
	Path   string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return fmt.Sprintf("alma server error: status %d calling %s", e.Status, e.Path)
}

// BusinessError indicates an API-level error delivered inside an
// otherwise well-formed response, e.g. "user not found".
type BusinessError struct {
	Status  int
	Message string
	Path    string
}

// Error implements the error interface
func (e *BusinessError) Error() string {
	return fmt.Sprintf("alma API error: status %d: %s", e.Status, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *BusinessError) IsNotFound() bool {
	return e.Status == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *BusinessError) IsUnauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// ParseError indicates a response body that could not be parsed as XML.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("alma parse error for %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
