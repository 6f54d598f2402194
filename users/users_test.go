package users_test

import (
	"testing"

	"github.com/0xsonu/mlms/users"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := users.User{Email: "a@x.com", Name: "Ada", TenantID: "t1", Role: users.RoleAdmin}
	require.NoError(t, valid.Validate())

	missingEmail := valid
	missingEmail.Email = " "
	require.Error(t, missingEmail.Validate())

	missingName := valid
	missingName.Name = ""
	require.Error(t, missingName.Validate())

	missingTenant := valid
	missingTenant.TenantID = ""
	require.Error(t, missingTenant.Validate())

	badRole := valid
	badRole.Role = "superuser"
	require.Error(t, badRole.Validate())
}

func TestValidRole(t *testing.T) {
	require.True(t, users.ValidRole(users.RoleAdmin))
	require.True(t, users.ValidRole(users.RoleInstructor))
	require.True(t, users.ValidRole(users.RoleLearner))
	require.False(t, users.ValidRole("owner"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.True(t, users.CheckPasswordHash("Password123", hash))
	require.False(t, users.CheckPasswordHash("password123", hash))
}
