package domain

import "time"

// TripGrant approves ongoing access of one user to one trip at a given role.
// At most one grant exists per (user, trip) pair.
type TripGrant struct {
	ID        string
	UserID    string
	TripID    string
	Role      Role
	GrantedBy string
	GrantedAt time.Time
}

// TripMember is a grant joined with the member's user record, for admin
// listings.
type TripMember struct {
	TripGrant

	UserEmail string
	UserName  string
}
