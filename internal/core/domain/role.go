package domain

// Role is the portal role stored on a profile.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleCompany   Role = "company"
	RoleVendor    Role = "vendor"
)

// Valid reports whether r is one of the canonical portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleCompany, RoleVendor:
		return true
	}
	return false
}

// LegacyRoles maps historical role spellings to the canonical roles.
var LegacyRoles = map[Role]Role{
	"employer":   RoleCompany,
	"job-seeker": RoleJobSeeker,
}

// Canonical returns the canonical spelling of r. Unknown values are
// returned unchanged.
func (r Role) Canonical() Role {
	if c, ok := LegacyRoles[r]; ok {
		return c
	}
	return r
}

func (r Role) String() string { return string(r) }
