// Package guard decides whether a composite view may enter a protected
// view. Each check walks initializing → checking → authorized | redirecting;
// the last two are terminal and a new navigation starts a new Check.
package guard

import "github.com/talentbridge/job-portal/internal/core/domain"

// State is a step of the access check.
type State string

const (
	StateInitializing State = "initializing"
	StateChecking     State = "checking"
	StateAuthorized   State = "authorized"
	StateRedirecting  State = "redirecting"
)

// Redirect targets.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

// roleEquivalents expands a required role into every stored role value that
// satisfies it. Historical rows used "employer" and "job-seeker".
var roleEquivalents = map[string][]string{
	"company":    {"company", "employer"},
	"employer":   {"company", "employer"},
	"job_seeker": {"job_seeker", "job-seeker"},
	"job-seeker": {"job_seeker", "job-seeker"},
	"vendor":     {"vendor"},
}

// Check is one run of the guard for one protected view.
type Check struct {
	required []string
	state    State
	target   string
}

// New starts a check for the given role set. An empty set admits any
// authenticated profile.
func New(required ...string) *Check {
	return &Check{required: required, state: StateInitializing}
}

func (c *Check) State() State { return c.state }

// Target is the redirect destination once the check is redirecting.
func (c *Check) Target() string { return c.target }

// Advance feeds the controller's ready flag and current view into the check
// and returns the resulting state. Terminal states never change.
func (c *Check) Advance(ready bool, view *domain.CompositeView) State {
	if c.state == StateAuthorized || c.state == StateRedirecting {
		return c.state
	}
	if !ready {
		c.state = StateInitializing
		return c.state
	}
	c.state = StateChecking

	if view == nil || view.Profile().ID == "" {
		c.redirect(LoginPath)
		return c.state
	}
	if !Allows(c.required, string(view.Profile().Role)) {
		c.redirect(UnauthorizedPath)
		return c.state
	}
	c.state = StateAuthorized
	return c.state
}

func (c *Check) redirect(target string) {
	c.state = StateRedirecting
	c.target = target
}

// Allows reports whether role satisfies any of the required roles.
func Allows(required []string, role string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		for _, eq := range expand(r) {
			if eq == role {
				return true
			}
		}
	}
	return false
}

func expand(role string) []string {
	if eq, ok := roleEquivalents[role]; ok {
		return eq
	}
	return []string{role}
}

// Roles converts typed roles into the string form the guard compares.
func Roles(roles ...domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
