package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Kind represents the category of a gateway failure.
type Kind int

const (
	// KindNetwork indicates a transport-level failure (connection refused,
	// DNS, broken pipe)
	KindNetwork Kind = iota
	// KindTimeout indicates the fixed request timeout elapsed
	KindTimeout
	// KindAuth indicates a 401 response; the held token has been cleared
	KindAuth
	// KindBusiness indicates a 4xx response carrying a backend error code
	KindBusiness
	// KindServer indicates a 5xx response
	KindServer
	// KindParse indicates a malformed response body
	KindParse
)

// String returns a human-readable name for the error kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindTimeout:
		return "Timeout"
	case KindAuth:
		return "Authentication Error"
	case KindBusiness:
		return "Business Error"
	case KindServer:
		return "Server Error"
	case KindParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// APIError is the backend's wire error shape. Every failure the gateway
// returns is normalized into this form, synthesized locally when the
// backend never answered.
type APIError struct {
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
	ErrorCode string            `json:"errorCode"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// Error represents a failed gateway operation.
type Error struct {
	Kind       Kind      // Category of failure
	StatusCode int       // HTTP status code, 0 when the request never completed
	API        *APIError // Normalized wire error, never nil
	Err        error     // Underlying error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.API.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.API.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// newAPIError synthesizes a wire-shaped error for failures the backend
// never saw (transport errors, timeouts, unparseable bodies).
func newAPIError(path, code, message string) *APIError {
	return &APIError{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      path,
		ErrorCode: code,
		Message:   message,
	}
}

// NewNetworkError classifies a transport failure. Timeouts get their own
// kind so the caller can tell a slow backend from an unreachable one.
func NewNetworkError(path string, err error) *Error {
	kind := KindNetwork
	code := "NETWORK_ERROR"
	if isTimeout(err) {
		kind = KindTimeout
		code = "TIMEOUT"
	}
	return &Error{
		Kind: kind,
		API:  newAPIError(path, code, "Network error. Please check your connection."),
		Err:  err,
	}
}

// isTimeout reports whether err is a deadline/timeout failure
func isTimeout(err error) bool {
	if os.IsTimeout(err) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

// NewAuthError creates a 401 error. The caller is responsible for having
// cleared the token holder before constructing it.
func NewAuthError(path string, api *APIError) *Error {
	if api == nil {
		api = newAPIError(path, "UNAUTHORIZED", "Authentication required")
	}
	return &Error{Kind: KindAuth, StatusCode: 401, API: api}
}

// NewBusinessError creates an error from a 4xx response body. The backend
// message is surfaced verbatim to the user.
func NewBusinessError(statusCode int, path string, api *APIError) *Error {
	if api == nil {
		api = newAPIError(path, "BAD_REQUEST", fmt.Sprintf("request rejected with status %d", statusCode))
	}
	return &Error{Kind: KindBusiness, StatusCode: statusCode, API: api}
}

// NewServerError creates an error from a 5xx response.
func NewServerError(statusCode int, path string, api *APIError) *Error {
	if api == nil {
		api = newAPIError(path, "SERVER_ERROR", fmt.Sprintf("backend failed with status %d", statusCode))
	}
	return &Error{Kind: KindServer, StatusCode: statusCode, API: api}
}

// NewParseError creates an error for a malformed response body
func NewParseError(path string, err error) *Error {
	return &Error{
		Kind: KindParse,
		API:  newAPIError(path, "PARSE_ERROR", "failed to parse backend response"),
		Err:  err,
	}
}

// IsNetworkError checks if an error is a transport failure, including timeouts
func IsNetworkError(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind == KindNetwork || gwErr.Kind == KindTimeout
	}
	return false
}

// IsTimeoutError checks if an error is a request timeout
func IsTimeoutError(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind == KindTimeout
	}
	return false
}

// IsAuthError checks if an error is a 401
func IsAuthError(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind == KindAuth
	}
	return false
}

// IsBusinessError checks if an error carries a backend business error code
func IsBusinessError(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind == KindBusiness
	}
	return false
}

// UserMessage returns the single human-readable string the wizard surfaces
// for a failed operation. Business errors are shown verbatim; everything
// else degrades to a generic message so backend internals never leak into
// the UI.
func UserMessage(err error) string {
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		return err.Error()
	}

	switch gwErr.Kind {
	case KindBusiness, KindAuth:
		if gwErr.API != nil && gwErr.API.Message != "" {
			return gwErr.API.Message
		}
		return "The request could not be processed. Please try again."
	case KindTimeout:
		return "The request timed out. Please try again."
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindServer:
		return "The service is temporarily unavailable. Please try again."
	case KindParse:
		return "Unexpected response from the service. Please try again."
	default:
		return gwErr.API.Message
	}
}
