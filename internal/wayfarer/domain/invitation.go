package domain

import "time"

// Invitation is a time-boxed, single-use token that grants access to one or
// more trips at a fixed role when redeemed. Only the SHA-256 fingerprint of
// the code is stored; the raw code is returned once at creation.
//
// Lifecycle: pending (used_at null, expires_at in the future), redeemed
// (used_at set, terminal), expired (derived, never stored: expires_at passed
// while used_at still null).
type Invitation struct {
	ID        string
	CodeHash  string
	CreatedBy string

	// Email optionally records who the invitation was sent to. Informational
	// only; redemption does not require the registering email to match.
	Email *string

	Role      Role
	ExpiresAt time.Time
	UsedAt    *time.Time
	UsedBy    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Redeemed reports whether the invitation has been consumed.
func (inv Invitation) Redeemed() bool { return inv.UsedAt != nil }

// ExpiredAt reports whether the invitation is past its expiry at t and was
// never redeemed.
func (inv Invitation) ExpiredAt(t time.Time) bool {
	return !inv.Redeemed() && t.After(inv.ExpiresAt)
}
