package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

func viewWithRole(t *testing.T, role string) *domain.CompositeView {
	t.Helper()
	v, err := domain.NewView(domain.Profile{ID: "u1", Role: domain.Role(role)}, nil)
	require.NoError(t, err)
	return v
}

func TestCheck_StaysInitializingUntilReady(t *testing.T) {
	c := New("company")

	assert.Equal(t, StateInitializing, c.State())
	assert.Equal(t, StateInitializing, c.Advance(false, viewWithRole(t, "company")))
	assert.Equal(t, StateInitializing, c.Advance(false, nil))
	assert.Equal(t, StateAuthorized, c.Advance(true, viewWithRole(t, "company")))
}

func TestCheck_NoProfileRedirectsToLogin(t *testing.T) {
	c := New()

	assert.Equal(t, StateRedirecting, c.Advance(true, nil))
	assert.Equal(t, LoginPath, c.Target())
}

func TestCheck_EquivalenceClasses(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		role     string
		want     State
		target   string
	}{
		{"employer satisfies company", []string{"company"}, "employer", StateAuthorized, ""},
		{"company satisfies company", []string{"company"}, "company", StateAuthorized, ""},
		{"hyphenated job seeker", []string{"job_seeker"}, "job-seeker", StateAuthorized, ""},
		{"job seeker is not vendor", []string{"vendor"}, "job_seeker", StateRedirecting, UnauthorizedPath},
		{"any of several", []string{"vendor", "company"}, "company", StateAuthorized, ""},
		{"empty set admits anyone", nil, "vendor", StateAuthorized, ""},
		{"unknown required role matches itself", []string{"admin"}, "admin", StateAuthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.required...)
			got := c.Advance(true, viewWithRole(t, tt.role))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.target, c.Target())
		})
	}
}

func TestCheck_TerminalStatesDoNotChange(t *testing.T) {
	c := New("vendor")
	require.Equal(t, StateRedirecting, c.Advance(true, viewWithRole(t, "company")))

	assert.Equal(t, StateRedirecting, c.Advance(true, viewWithRole(t, "vendor")))
	assert.Equal(t, UnauthorizedPath, c.Target())

	ok := New("vendor")
	require.Equal(t, StateAuthorized, ok.Advance(true, viewWithRole(t, "vendor")))
	assert.Equal(t, StateAuthorized, ok.Advance(false, nil))
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []string{"company", "vendor"}, Roles(domain.RoleCompany, domain.RoleVendor))
}
