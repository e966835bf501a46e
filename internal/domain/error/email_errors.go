package error

import "errors"

// Email delivery errors.
var (
	// ErrEmailNotConfigured is returned when digest delivery is requested without an API key.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")

	// ErrEmailSendFailed is returned when the email provider rejects a send.
	ErrEmailSendFailed = errors.New("failed to send email")
)

// EmailErrorCode defines error codes for email errors.
type EmailErrorCode string

const (
	ErrCodeEmailNotConfigured EmailErrorCode = "EML-010001"
	ErrCodeEmailSendFailed    EmailErrorCode = "EML-020001"
)

// EmailError represents an email delivery error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
