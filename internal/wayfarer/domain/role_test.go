package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSatisfies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		granted  Role
		required Role
		want     bool
	}{
		{RoleViewer, RoleViewer, true},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleViewer, true},
		{RoleViewer, RoleEditor, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.granted.Satisfies(tc.required),
			"%s satisfies %s", tc.granted, tc.required)
	}
}

func TestSatisfiesFailsClosedOnUnknownRoles(t *testing.T) {
	t.Parallel()

	// Corrupted or future role values read from storage must deny.
	require.False(t, Role("owner").Satisfies(RoleViewer))
	require.False(t, Role("").Satisfies(RoleViewer))
	require.False(t, RoleEditor.Satisfies(Role("owner")))
	require.False(t, Role("owner").Satisfies(Role("owner")))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, err := ParseRole("editor")
	require.NoError(t, err)
	require.Equal(t, RoleEditor, r)

	r, err = ParseRole("viewer")
	require.NoError(t, err)
	require.Equal(t, RoleViewer, r)

	_, err = ParseRole("Editor")
	require.Error(t, err)
	_, err = ParseRole("admin")
	require.Error(t, err)
}
