package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCreate(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(newMemRoleRepo())

	t.Run("requires a name", func(t *testing.T) {
		_, err := service.Create(ctx, "")
		requireAppErr(t, err, http.StatusBadRequest, "Role name is required")
	})

	t.Run("creates a role", func(t *testing.T) {
		role, err := service.Create(ctx, "moderator")
		require.NoError(t, err)
		assert.Equal(t, "moderator", role.RoleName)
		assert.NotZero(t, role.ID)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		_, err := service.Create(ctx, "moderator")
		requireAppErr(t, err, http.StatusConflict, "Role moderator already exists")
	})
}

func TestRoleList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table is not found", func(t *testing.T) {
		service := NewRoleService(newMemRoleRepo())
		_, err := service.List(ctx)
		requireAppErr(t, err, http.StatusNotFound, "Roles not found")
	})

	t.Run("returns every role", func(t *testing.T) {
		service := NewRoleService(newMemRoleRepo())
		for _, name := range []string{"admin", "user"} {
			_, err := service.Create(ctx, name)
			require.NoError(t, err)
		}

		roles, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, "admin", roles[0].RoleName)
		assert.Equal(t, "user", roles[1].RoleName)
	})
}

func TestRoleGetByID(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(newMemRoleRepo())

	created, err := service.Create(ctx, "admin")
	require.NoError(t, err)

	role, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.RoleName, role.RoleName)

	_, err = service.GetByID(ctx, 999)
	requireAppErr(t, err, http.StatusNotFound, "Role not found")
}

func TestRoleDelete(t *testing.T) {
	ctx := context.Background()
	service := NewRoleService(newMemRoleRepo())

	created, err := service.Create(ctx, "temporary")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	err = service.Delete(ctx, created.ID)
	requireAppErr(t, err, http.StatusNotFound, "Role not found")
}
