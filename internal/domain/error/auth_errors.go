package error

import "errors"

// Authentication and boundary errors.
var (
	// ErrInvalidToken is returned when a bearer token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken is returned when no bearer token is supplied.
	ErrMissingToken = errors.New("missing authorization token")

	// ErrInvalidIngestKey is returned when the ingestion API key does not match.
	ErrInvalidIngestKey = errors.New("invalid ingest api key")
)

// AuthErrorCode defines error codes for authentication errors.
type AuthErrorCode string

const (
	ErrCodeMissingToken     AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidToken     AuthErrorCode = "AUTH-010002"
	ErrCodeInvalidIngestKey AuthErrorCode = "AUTH-010003"
	ErrCodeRateLimited      AuthErrorCode = "AUTH-020001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewInvalidTokenError creates an AuthError for a token that failed validation.
func NewInvalidTokenError(err error) *AuthError {
	return &AuthError{
		Code:    ErrCodeInvalidToken,
		Message: "invalid or expired token",
		Err:     err,
	}
}
