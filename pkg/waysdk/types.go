package waysdk

import "time"

// User is the public view of a user account.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// BootstrapRequest creates the first admin account on a fresh deployment.
type BootstrapRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// BootstrapResponse confirms the created admin.
type BootstrapResponse struct {
	User User `json:"user"`
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

// TripRequest creates or updates a trip.
type TripRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Trip is the shared resource grants apply to.
type Trip struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Grant is a stored approval of ongoing access to one trip.
type Grant struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TripID    string    `json:"trip_id"`
	Role      string    `json:"role"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}

// Member is a grant joined with the member's user record.
type Member struct {
	Grant

	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// GrantRequest creates a grant on a trip for a user.
type GrantRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// GrantUpdateRequest changes the role on an existing grant.
type GrantUpdateRequest struct {
	Role string `json:"role"`
}

// InvitationRequest issues an invitation covering one or more trips.
// TTLSeconds may be negative to construct an already-expired invitation.
type InvitationRequest struct {
	Role       string   `json:"role"`
	TripIDs    []string `json:"trip_ids"`
	Email      string   `json:"email,omitempty"`
	TTLSeconds int64    `json:"ttl_seconds"`
}

// Invitation is the stored invitation record. The code itself is only ever
// present in InvitationCreateResponse.
type Invitation struct {
	ID        string     `json:"id"`
	CreatedBy string     `json:"created_by"`
	Email     *string    `json:"email,omitempty"`
	Role      string     `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	UsedBy    *string    `json:"used_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitationCreateResponse carries the raw invitation code exactly once.
type InvitationCreateResponse struct {
	Code       string     `json:"code"`
	Invitation Invitation `json:"invitation"`
}

// ValidateInvitationRequest checks whether a code is redeemable.
type ValidateInvitationRequest struct {
	Code string `json:"code"`
}

// ValidateInvitationResponse reports the redeemability of a code. Reason is
// one of "not_found", "already_used", "expired" when Valid is false; Role and
// TripIDs are populated when Valid is true.
type ValidateInvitationResponse struct {
	Valid   bool     `json:"valid"`
	Reason  string   `json:"reason,omitempty"`
	Role    string   `json:"role,omitempty"`
	TripIDs []string `json:"trip_ids,omitempty"`
}

// RedeemInvitationRequest consumes an invitation. Email, Name and Password
// are required only for anonymous redemption, which registers the account in
// the same transaction.
type RedeemInvitationRequest struct {
	Code     string `json:"code"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// RedeemInvitationResponse lists the grants created by redemption.
type RedeemInvitationResponse struct {
	User   User    `json:"user"`
	Grants []Grant `json:"grants"`
}

// LivenessResponse reports process health.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse reports dependency health.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// JWK is a public signing key as served by the JWKS endpoint.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
}

// JWKSResponse is the JSON Web Key Set served at /.well-known/jwks.json.
type JWKSResponse struct {
	Keys []JWK `json:"keys"`
}
