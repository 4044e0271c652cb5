package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "USER", want: RoleUser},
		{in: "admin", want: RoleAdmin},
		{in: " SUPER_ADMIN ", want: RoleSuperAdmin},
		{in: "ROOT", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRolesJSON(t *testing.T) {
	roles := Roles{RoleUser, RoleSuperAdmin}

	raw, err := json.Marshal(roles)
	require.NoError(t, err)
	assert.JSONEq(t, `["USER","SUPER_ADMIN"]`, string(raw))

	var decoded Roles
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, roles, decoded)

	_, err = json.Marshal(Roles{0})
	assert.Error(t, err)
}

func TestRoles_Highest(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, Roles{RoleUser, RoleSuperAdmin, RoleAdmin}.Highest())
	assert.Equal(t, Role(0), Roles{}.Highest())
	assert.Equal(t, "Role(9)", Role(9).String())
}
