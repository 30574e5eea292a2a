// Package errors provides custom error types for the MediLingua backend client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrInvalidResponse  = errors.New("invalid response format")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrNotConfigured    = errors.New("capability not configured")
)

// APIError represents a backend request that completed with a non-success status
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NetworkError represents a request that never produced a response
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error at %s", e.Endpoint)
	}
	return fmt.Sprintf("network error at %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// ImageError is an OCR failure reported by the backend in its error body
type ImageError struct {
	StatusCode int
	Message    string
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image processing failed: %s", e.Message)
}

// NewImageError creates a new ImageError
func NewImageError(statusCode int, message string) *ImageError {
	return &ImageError{StatusCode: statusCode, Message: message}
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsAPIError reports whether err is a non-success backend response
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsParseError reports whether err is a malformed backend response
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// AsImageError extracts a server-reported image failure from err
func AsImageError(err error) (*ImageError, bool) {
	var imgErr *ImageError
	if errors.As(err, &imgErr) {
		return imgErr, true
	}
	return nil, false
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if imgErr, ok := AsImageError(err); ok {
		return imgErr.StatusCode
	}
	return 0
}
