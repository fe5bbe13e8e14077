package httpx

import (
	"encoding/json"
	"net/http"
)

// Error kinds shared across the HTTP surface. Resource-access denials always
// use ErrKindForbidden, including the case where the trip does not exist, so
// responses never reveal which trips are real.
const (
	ErrKindUnauthenticated = "unauthenticated"
	ErrKindForbidden       = "forbidden"
	ErrKindNotFound        = "not_found"
	ErrKindConflict        = "conflict"
	ErrKindValidation      = "validation_error"
	ErrKindRateLimited     = "rate_limited"
	ErrKindServer          = "server_error"

	// Invitation validation deliberately distinguishes its failure reasons.
	ErrKindInvitationNotFound    = "invitation_not_found"
	ErrKindInvitationExpired     = "invitation_expired"
	ErrKindInvitationAlreadyUsed = "invitation_already_used"
)

// ErrorResponse is the error envelope every failing endpoint returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets Content-Type and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, code int, kind, message string) {
	WriteJSON(w, code, ErrorResponse{Error: kind, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for sensitive responses like tokens and invitation codes.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
