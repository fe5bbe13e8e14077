package waysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Wayfarer deployment. It handles unauthenticated
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs a JSON request. A nil body sends no payload; a non-nil out
// decodes the response into it. The bearer token is attached when non-empty.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any, expectedStatus int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Bootstrap performs the one-time first-admin setup.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", "", req, &out, http.StatusCreated)
	return out, err
}

// Login authenticates and returns a Session carrying the access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: password}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, accessToken: out.AccessToken, user: out.User}, nil
}

// NewSessionFromToken creates a Session from an existing access token.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// ValidateInvitation checks whether an invitation code is redeemable. This is
// a public read; the response distinguishes why a code is not redeemable.
func (c *Client) ValidateInvitation(ctx context.Context, code string) (ValidateInvitationResponse, error) {
	var out ValidateInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/invitations/validate", "", ValidateInvitationRequest{Code: code}, &out, http.StatusOK)
	return out, err
}

// RedeemInvitation redeems a code anonymously, registering the account named
// in the request in the same transaction.
func (c *Client) RedeemInvitation(ctx context.Context, req RedeemInvitationRequest) (RedeemInvitationResponse, error) {
	var out RedeemInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/invitations/redeem", "", req, &out, http.StatusOK)
	return out, err
}

// GetJWKS fetches the public JSON Web Key Set used to verify access tokens.
func (c *Client) GetJWKS(ctx context.Context) (JWKSResponse, error) {
	var out JWKSResponse
	err := c.do(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil, &out, http.StatusOK)
	return out, err
}

// GetLiveness reports process health.
func (c *Client) GetLiveness(ctx context.Context) (LivenessResponse, error) {
	var out LivenessResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out, http.StatusOK)
	return out, err
}

// GetReadiness reports dependency health.
func (c *Client) GetReadiness(ctx context.Context) (ReadinessResponse, error) {
	var out ReadinessResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out, http.StatusOK)
	return out, err
}
