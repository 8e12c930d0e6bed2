package n8n

import (
	"encoding/json"
	"fmt"
)

// ErrorCode classifies a failure into the closed set used across the server.
type ErrorCode int

const (
	ErrInitialization ErrorCode = 1000
	ErrAuthentication ErrorCode = 1001
	ErrNotFound       ErrorCode = 1002
	ErrInvalidRequest ErrorCode = 1003
	ErrInternal       ErrorCode = 1004
	ErrNotImplemented ErrorCode = 1005
)

// String makes ErrorCode satisfy fmt.Stringer.
func (c ErrorCode) String() string {
	switch c {
	case ErrInitialization:
		return "InitializationError"
	case ErrAuthentication:
		return "AuthenticationError"
	case ErrNotFound:
		return "NotFoundError"
	case ErrInvalidRequest:
		return "InvalidRequest"
	case ErrInternal:
		return "InternalError"
	case ErrNotImplemented:
		return "NotImplemented"
	default:
		return "UnknownError"
	}
}

// APIError is the uniform error shape every gateway failure is translated
// into. Status is the HTTP status of the remote response when one was
// received, zero otherwise. Details carries the remote response body or the
// transport failure message.
type APIError struct {
	Code    ErrorCode
	Message string
	Status  int
	Details any
}

// Error renders the message together with the status and a best-effort JSON
// rendering of the details. Details that cannot be serialized are omitted,
// never propagated as a failure.
func (e *APIError) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (Status: %d)", msg, e.Status)
	}
	if e.Details != nil {
		if s, ok := e.Details.(string); ok {
			msg = fmt.Sprintf("%s\nDetails: %s", msg, s)
		} else if b, err := json.MarshalIndent(e.Details, "", "  "); err == nil {
			msg = fmt.Sprintf("%s\nDetails: %s", msg, b)
		}
	}
	return msg
}

// NewAPIError builds an APIError, deriving the code from the HTTP status:
// 401/403 map to AuthenticationError, 404 to NotFoundError, other 4xx to
// InvalidRequest and everything else (including no status at all) to
// InternalError.
func NewAPIError(message string, status int, details any) *APIError {
	code := ErrInternal
	switch {
	case status == 401 || status == 403:
		code = ErrAuthentication
	case status == 404:
		code = ErrNotFound
	case status >= 400 && status < 500:
		code = ErrInvalidRequest
	}
	return &APIError{Code: code, Message: message, Status: status, Details: details}
}

// NewInvalidRequestError reports a caller-side argument problem, such as a
// missing required parameter.
func NewInvalidRequestError(message string) *APIError {
	return &APIError{Code: ErrInvalidRequest, Message: message}
}

// NewInitializationError reports invalid startup configuration.
func NewInitializationError(message string) *APIError {
	return &APIError{Code: ErrInitialization, Message: message}
}

// translateResponseError converts a non-2xx remote response into an APIError.
// When the body decodes as JSON with a message field, that message replaces
// the default; the decoded body (or the raw text) is kept as details.
func translateResponseError(status int, body []byte, defaultMessage string) *APIError {
	message := defaultMessage
	var details any
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		details = decoded
		if m, ok := decoded["message"].(string); ok && m != "" {
			message = m
		}
	} else if len(body) > 0 {
		details = string(body)
	}
	return NewAPIError(message, status, details)
}

// translateTransportError converts a failure with no remote response
// (network, DNS, timeout) into an InternalError.
func translateTransportError(err error) *APIError {
	return &APIError{
		Code:    ErrInternal,
		Message: "Network error connecting to n8n API",
		Details: err.Error(),
	}
}
