package domain

import "time"

// Trip is the shared resource access grants apply to. This subsystem only
// needs its id for authorization; the rest is presentation data.
type Trip struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
