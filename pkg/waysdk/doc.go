/*
Package waysdk provides a client SDK for the Wayfarer trip-sharing service.

The package is organized around two types:

  - Client: unauthenticated operations (bootstrap, login, health, JWKS,
    invitation validation and redemption) and the entry point for sessions
  - Session: authenticated operations carrying a bearer access token

Create a Client for public endpoints and to authenticate:

	client := waysdk.NewClient("https://wayfarer.example.com")

	session, err := client.Login(ctx, "ada@example.com", "password")
	if err != nil {
		return err
	}

	trips, err := session.ListTrips(ctx)

Invitation redemption works both anonymously (registering a new account) and
from an existing session:

	// Anonymous invitee registers while redeeming.
	res, err := client.RedeemInvitation(ctx, waysdk.RedeemInvitationRequest{
		Code:     code,
		Email:    "new@example.com",
		Name:     "Newcomer",
		Password: "password",
	})

	// Existing user redeems for themselves.
	res, err := session.RedeemInvitation(ctx, code)

Errors returned by the service are surfaced as *APIError carrying the HTTP
status code and the service's error kind.
*/
package waysdk
