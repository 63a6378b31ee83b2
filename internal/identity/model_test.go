package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"doctor", "nurse", "receptionist", "admin"} {
		role, err := ParseRole(valid)
		require.NoError(t, err, "role %q", valid)
		assert.Equal(t, Role(valid), role)
		assert.True(t, role.Valid())
	}

	for _, invalid := range []string{"", "Doctor", "surgeon", "admin "} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "role %q", invalid)
	}
}

func TestRoleDashboard(t *testing.T) {
	assert.Equal(t, "doctor_dashboard", RoleDoctor.Dashboard())
	assert.Equal(t, "nurse_dashboard", RoleNurse.Dashboard())
	assert.Equal(t, "receptionist_dashboard", RoleReceptionist.Dashboard())
	assert.Equal(t, "admin_dashboard", RoleAdmin.Dashboard())
	assert.Equal(t, "home", Role("intruder").Dashboard())
}

func TestUserFullName(t *testing.T) {
	u := User{Username: "dr.naulu", FirstName: "Josefa", LastName: "Naulu"}
	assert.Equal(t, "Josefa Naulu", u.FullName())

	blank := User{Username: "dr.naulu"}
	assert.Equal(t, "dr.naulu", blank.FullName())
}
