package user_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates_valid_user", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, "Ana", "ana@example.com", user.RoleClient, true, "tok-1")

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "Ana", u.Name())
		assert.Equal(t, user.RoleClient, u.Role())
		assert.True(t, u.Active())
		assert.Equal(t, "tok-1", u.Token())
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", "", user.RoleClient, true, "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Ana", "", user.Role("superuser"), true, "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		var id kernel.UUID
		_, err := user.NewUser(id, "Ana", "", user.RoleClient, true, "")

		require.Error(t, err)
	})
}

func TestUser_IsActiveCourier(t *testing.T) {
	cases := []struct {
		name   string
		role   user.Role
		active bool
		want   bool
	}{
		{"active_courier", user.RoleCourier, true, true},
		{"inactive_courier", user.RoleCourier, false, false},
		{"active_client", user.RoleClient, true, false},
		{"admin", user.RoleAdmin, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := user.NewUser(kernel.NewUUID(), "P", "", tc.role, tc.active, "")
			require.NoError(t, err)

			assert.Equal(t, tc.want, u.IsActiveCourier())
		})
	}
}

func TestPrincipal(t *testing.T) {
	t.Run("validates_id_and_role", func(t *testing.T) {
		p := user.Principal{ID: kernel.NewUUID(), Role: user.RoleAdmin}
		require.NoError(t, p.Validate())
		assert.True(t, p.IsAdmin())
		assert.False(t, p.IsCourier())
	})

	t.Run("zero_principal_is_invalid", func(t *testing.T) {
		var p user.Principal
		require.Error(t, p.Validate())
	})

	t.Run("user_exposes_principal", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "C", "", user.RoleCourier, true, "")
		require.NoError(t, err)

		p := u.Principal()
		assert.True(t, p.IsCourier())
		assert.True(t, p.ID.IsEqual(u.ID()))
	})
}

func TestValidate_ZeroUser(t *testing.T) {
	var u user.User

	require.Error(t, u.Validate())
}
