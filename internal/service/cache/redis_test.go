package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kingrain94/tenancy-api/internal/domain"
)

func TestRoleKey(t *testing.T) {
	assert.Equal(t, "role:t1:p1", roleKey("p1", "t1"))
}

func TestRoleEncoding(t *testing.T) {
	for _, role := range append([]domain.Role{domain.RoleNone}, domain.ValidRoles...) {
		got, hit, err := decodeRole(encodeRole(role))
		assert.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, role, got)
	}

	_, hit, err := decodeRole("superuser")
	assert.NoError(t, err)
	assert.False(t, hit)
}
