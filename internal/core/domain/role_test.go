package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleCanonical(t *testing.T) {
	assert.Equal(t, RoleCompany, Role("employer").Canonical())
	assert.Equal(t, RoleJobSeeker, Role("job-seeker").Canonical())
	assert.Equal(t, RoleVendor, RoleVendor.Canonical())
	assert.Equal(t, Role("admin"), Role("admin").Canonical())
}

func TestNewProfileFromIdentity_LegacyMetadataRole(t *testing.T) {
	p := NewProfileFromIdentity(Identity{ID: "u1", Email: "a@b.test", Metadata: IdentityMetadata{Role: "employer"}}, time.Time{})
	assert.Equal(t, RoleCompany, p.Role)
}
