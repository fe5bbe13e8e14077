package domain

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	// IsAdmin is the global superuser flag. Admin access is derived entirely
	// from this field; admins never hold trip grant rows.
	IsAdmin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
