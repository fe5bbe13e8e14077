package store

import (
	"context"
	"errors"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Trips() Trips
	Grants() Grants
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step writes such as invitation
	// redemption.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and registration.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

type Trips interface {
	// GetTripByID returns a trip by id. Never called on the authorization
	// path; access checks go through Grants only.
	GetTripByID(ctx context.Context, id string) (domain.Trip, error)

	// ListTripsForUser returns the trips the user holds a grant on, newest
	// first.
	ListTripsForUser(ctx context.Context, userID string) ([]domain.Trip, error)

	// ListAllTrips returns every trip, newest first (admin listing).
	ListAllTrips(ctx context.Context) ([]domain.Trip, error)

	// CreateTrip inserts a new trip.
	CreateTrip(ctx context.Context, t domain.Trip) error

	// UpdateTrip mutates name/description and bumps updated_at.
	UpdateTrip(ctx context.Context, id, name, description string) error

	// DeleteTrip cascades to grants and invitation links (per schema).
	DeleteTrip(ctx context.Context, id string) error
}

type Grants interface {
	// CreateGrant inserts a new grant. Returns ErrAlreadyExists when a grant
	// for the same (user, trip) pair is present.
	CreateGrant(ctx context.Context, g domain.TripGrant) error

	// UpsertGrant inserts or refreshes the grant for (user, trip). Only the
	// invitation redemption path uses this; the admin-facing CreateGrant
	// stays strict so a duplicate single grant surfaces as a conflict.
	UpsertGrant(ctx context.Context, g domain.TripGrant) error

	// GetGrantByID fetches a grant by primary key.
	GetGrantByID(ctx context.Context, id string) (domain.TripGrant, error)

	// GetGrantForUserTrip is the single lookup behind every resource-scoped
	// access check.
	GetGrantForUserTrip(ctx context.Context, userID, tripID string) (domain.TripGrant, error)

	// UpdateGrantRole changes the role on an existing grant.
	UpdateGrantRole(ctx context.Context, grantID string, role domain.Role) error

	// DeleteGrant removes a grant. Returns ErrNotFound when already absent.
	DeleteGrant(ctx context.Context, grantID string) error

	// ListMembersForTrip returns grants joined with user info for admin
	// listings.
	ListMembersForTrip(ctx context.Context, tripID string) ([]domain.TripMember, error)

	// CountGrantsForTrips counts grant rows across the given trips (test and
	// audit helper).
	CountGrantsForTrips(ctx context.Context, tripIDs []string) (int, error)
}

type Invitations interface {
	// CreateInvitation writes a new invitation (code_hash is the SHA-256
	// fingerprint of the opaque code).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// AddTripLink records that the invitation grants access to a trip.
	// Links are created with the invitation and immutable afterward.
	AddTripLink(ctx context.Context, invitationID, tripID string) error

	// GetInvitationByCodeHash returns the invitation for a fingerprint,
	// regardless of its lifecycle state.
	GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetInvitationByID fetches by primary key (admin operations).
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// ListTripIDs returns the trip ids linked to an invitation.
	ListTripIDs(ctx context.Context, invitationID string) ([]string, error)

	// ListInvitations returns all invitations, newest first (admin listing).
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)

	// MarkInvitationUsed performs the conditional used_at transition:
	// UPDATE ... WHERE id = ? AND used_at IS NULL. It returns ErrNotFound
	// when no row changed, i.e. the invitation is unknown or was already
	// consumed - the affected-row count is the compare-and-set that resolves
	// concurrent redemption.
	MarkInvitationUsed(ctx context.Context, invitationID, usedByUserID string, at time.Time) error

	// DeleteInvitationsExpiredBefore removes invitations whose expiry lies
	// before the cutoff and which were never redeemed (housekeeping).
	DeleteInvitationsExpiredBefore(ctx context.Context, cutoff time.Time) error
}
