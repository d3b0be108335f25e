package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"owner", "admin", "user"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		require.Equal(t, s, r.String())
	}

	for _, s := range []string{"", "Owner", "superuser", "member"} {
		_, err := ParseRole(s)
		require.Error(t, err, s)
	}
}

func TestCanManageTeam(t *testing.T) {
	t.Parallel()

	require.True(t, RoleOwner.CanManageTeam())
	require.True(t, RoleAdmin.CanManageTeam())
	require.False(t, RoleUser.CanManageTeam())
}

func TestParseEntryType(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"income", "expense"} {
		et, err := ParseEntryType(s)
		require.NoError(t, err)
		require.Equal(t, s, et.String())
	}

	_, err := ParseEntryType("transfer")
	require.Error(t, err)
}
