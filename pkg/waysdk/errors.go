package waysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kinds returned by the service. These mirror the server's error
// envelope so callers can switch on Kind without string literals.
const (
	ErrorKindUnauthenticated = "unauthenticated"
	ErrorKindForbidden       = "forbidden"
	ErrorKindNotFound        = "not_found"
	ErrorKindConflict        = "conflict"
	ErrorKindValidation      = "validation_error"
	ErrorKindRateLimited     = "rate_limited"
	ErrorKindServer          = "server_error"

	ErrorKindInvitationNotFound    = "invitation_not_found"
	ErrorKindInvitationExpired     = "invitation_expired"
	ErrorKindInvitationAlreadyUsed = "invitation_already_used"
)

// APIError is a structured error response from the service.
type APIError struct {
	StatusCode int    `json:"-"`
	Kind       string `json:"error"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is an *APIError with the given kind.
func IsKind(err error, kind string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == kind
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Kind != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       ErrorKindServer,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
