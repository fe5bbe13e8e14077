package waysdk

import (
	"context"
	"net/http"
	"time"
)

// Session is an authenticated client. It is safe for concurrent use; the
// token is immutable for the session's lifetime. Wayfarer tokens are
// short-lived, so callers re-login rather than refresh.
type Session struct {
	client      *Client
	accessToken string
	user        User
}

// AccessToken returns the bearer token backing this session.
func (s *Session) AccessToken() string { return s.accessToken }

// User returns the authenticated user as reported at login. Empty for
// sessions created from a raw token.
func (s *Session) User() User { return s.user }

// CreateTrip creates a trip. Non-admin creators receive an editor grant.
func (s *Session) CreateTrip(ctx context.Context, req TripRequest) (Trip, error) {
	var out Trip
	err := s.client.do(ctx, http.MethodPost, "/v1/trips", s.accessToken, req, &out, http.StatusCreated)
	return out, err
}

// ListTrips lists the trips this session can access.
func (s *Session) ListTrips(ctx context.Context) ([]Trip, error) {
	var out []Trip
	err := s.client.do(ctx, http.MethodGet, "/v1/trips", s.accessToken, nil, &out, http.StatusOK)
	return out, err
}

// GetTrip fetches one trip. Requires at least a viewer grant (or admin).
func (s *Session) GetTrip(ctx context.Context, tripID string) (Trip, error) {
	var out Trip
	err := s.client.do(ctx, http.MethodGet, "/v1/trips/"+tripID, s.accessToken, nil, &out, http.StatusOK)
	return out, err
}

// UpdateTrip updates a trip. Requires an editor grant (or admin).
func (s *Session) UpdateTrip(ctx context.Context, tripID string, req TripRequest) (Trip, error) {
	var out Trip
	err := s.client.do(ctx, http.MethodPatch, "/v1/trips/"+tripID, s.accessToken, req, &out, http.StatusOK)
	return out, err
}

// DeleteTrip deletes a trip. Requires an editor grant (or admin).
func (s *Session) DeleteTrip(ctx context.Context, tripID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/trips/"+tripID, s.accessToken, nil, nil, http.StatusNoContent)
}

// ListMembers lists the grants on a trip with user info. Admin only.
func (s *Session) ListMembers(ctx context.Context, tripID string) ([]Member, error) {
	var out []Member
	err := s.client.do(ctx, http.MethodGet, "/v1/trips/"+tripID+"/members", s.accessToken, nil, &out, http.StatusOK)
	return out, err
}

// Grant creates an access grant on a trip. Admin only.
func (s *Session) Grant(ctx context.Context, tripID string, req GrantRequest) (Grant, error) {
	var out Grant
	err := s.client.do(ctx, http.MethodPost, "/v1/trips/"+tripID+"/members", s.accessToken, req, &out, http.StatusCreated)
	return out, err
}

// UpdateGrantRole changes the role on a grant. Admin only.
func (s *Session) UpdateGrantRole(ctx context.Context, grantID, role string) (Grant, error) {
	var out Grant
	err := s.client.do(ctx, http.MethodPatch, "/v1/grants/"+grantID, s.accessToken, GrantUpdateRequest{Role: role}, &out, http.StatusOK)
	return out, err
}

// RevokeGrant removes a grant. Admin only.
func (s *Session) RevokeGrant(ctx context.Context, grantID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/grants/"+grantID, s.accessToken, nil, nil, http.StatusNoContent)
}

// CreateInvitation issues an invitation. Admin only. TTL precision below one
// second is dropped.
func (s *Session) CreateInvitation(ctx context.Context, role string, tripIDs []string, email string, ttl time.Duration) (InvitationCreateResponse, error) {
	var out InvitationCreateResponse
	req := InvitationRequest{
		Role:       role,
		TripIDs:    tripIDs,
		Email:      email,
		TTLSeconds: int64(ttl / time.Second),
	}
	err := s.client.do(ctx, http.MethodPost, "/v1/invitations", s.accessToken, req, &out, http.StatusCreated)
	return out, err
}

// ListInvitations lists all invitations. Admin only.
func (s *Session) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var out []Invitation
	err := s.client.do(ctx, http.MethodGet, "/v1/invitations", s.accessToken, nil, &out, http.StatusOK)
	return out, err
}

// RevokeInvitation consumes an invitation without granting access. Admin
// only.
func (s *Session) RevokeInvitation(ctx context.Context, invitationID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/invitations/"+invitationID, s.accessToken, nil, nil, http.StatusNoContent)
}

// RedeemInvitation redeems a code for the authenticated user.
func (s *Session) RedeemInvitation(ctx context.Context, code string) (RedeemInvitationResponse, error) {
	var out RedeemInvitationResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/invitations/redeem", s.accessToken, RedeemInvitationRequest{Code: code}, &out, http.StatusOK)
	return out, err
}
