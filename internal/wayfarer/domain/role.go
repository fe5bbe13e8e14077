package domain

import "fmt"

// Role is the per-trip access level stored on a grant. Roles form a total
// order: every capability of a lower role is included in the higher one.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// roleRank is the explicit ordinal table for the role hierarchy. Inserting a
// future role between viewer and editor only requires a new entry here; call
// sites compare through Satisfies and never look at ordinals directly.
var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
}

// Valid reports whether r is a known role constant.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether a grant of r meets the minimum requirement.
// Unknown values on either side satisfy nothing: a corrupted role read from
// storage must deny, never crash or accidentally allow.
func (r Role) Satisfies(required Role) bool {
	granted, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return granted >= need
}

// ParseRole validates a role string from an API payload.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
