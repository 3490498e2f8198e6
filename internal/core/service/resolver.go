package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// Repositories bundles the record stores the portal reads and writes.
type Repositories struct {
	Profiles   ports.ProfileRepository
	Companies  ports.CompanyRepository
	Vendors    ports.VendorRepository
	JobSeekers ports.JobSeekerRepository
	Jobs       ports.JobRepository
}

// Resolver assembles the composite view of an identity straight from the
// repositories, provisioning a default profile when none exists.
type Resolver struct {
	repos Repositories
	log   zerolog.Logger
	now   func() time.Time
}

// NewResolver returns a Resolver over repos.
func NewResolver(repos Repositories, log zerolog.Logger) *Resolver {
	return &Resolver{
		repos: repos,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Resolve returns the full view for identity. Any repository failure aborts
// the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, identity domain.Identity) (*domain.CompositeView, error) {
	profile, err := r.profile(ctx, identity)
	if err != nil {
		return nil, err
	}

	var acc domain.Account
	switch profile.Role {
	case domain.RoleCompany:
		acc, err = r.companyAccount(ctx, profile.ID)
	case domain.RoleVendor:
		acc, err = r.vendorAccount(ctx, profile.ID)
	case domain.RoleJobSeeker:
		acc, err = r.jobSeekerAccount(ctx, profile.ID)
	default:
		r.log.Warn().Str("identity_id", profile.ID).Str("role", string(profile.Role)).Msg("unknown profile role, resolving profile only")
	}
	if err != nil {
		return nil, err
	}
	return domain.NewView(*profile, acc)
}

// profile loads the identity's profile, creating the default one when it is
// missing. A concurrent creation is resolved by re-reading.
func (r *Resolver) profile(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	p, err := r.repos.Profiles.FindByID(ctx, identity.ID)
	if err == nil {
		p.Role = p.Role.Canonical()
		return p, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	fresh := domain.NewProfileFromIdentity(identity, r.now())
	if err := r.repos.Profiles.Create(ctx, &fresh); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("provision profile: %w", err)
		}
		p, err = r.repos.Profiles.FindByID(ctx, identity.ID)
		if err != nil {
			return nil, fmt.Errorf("reload profile: %w", err)
		}
		p.Role = p.Role.Canonical()
		return p, nil
	}
	r.log.Info().Str("identity_id", identity.ID).Str("role", string(fresh.Role)).Msg("profile provisioned")
	return &fresh, nil
}

func (r *Resolver) companyAccount(ctx context.Context, profileID string) (domain.Account, error) {
	m, err := r.repos.Companies.FindMembership(ctx, profileID)
	if errors.Is(err, domain.ErrMembershipNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load company membership: %w", err)
	}
	c, err := r.repos.Companies.FindByID(ctx, m.CompanyID)
	if errors.Is(err, domain.ErrCompanyNotFound) {
		r.log.Warn().Str("identity_id", profileID).Str("company_id", m.CompanyID).Msg("membership points at missing company")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	return domain.CompanyAccount{Company: *c, Membership: *m}, nil
}

func (r *Resolver) vendorAccount(ctx context.Context, profileID string) (domain.Account, error) {
	m, err := r.repos.Vendors.FindMembership(ctx, profileID)
	if errors.Is(err, domain.ErrMembershipNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vendor membership: %w", err)
	}
	v, err := r.repos.Vendors.FindByID(ctx, m.VendorID)
	if errors.Is(err, domain.ErrVendorNotFound) {
		r.log.Warn().Str("identity_id", profileID).Str("vendor_id", m.VendorID).Msg("membership points at missing vendor")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vendor: %w", err)
	}
	return domain.VendorAccount{Vendor: *v, Membership: *m}, nil
}

func (r *Resolver) jobSeekerAccount(ctx context.Context, profileID string) (domain.Account, error) {
	js, err := ensureJobSeeker(ctx, r.repos.JobSeekers, profileID, r.now())
	if err != nil {
		return nil, err
	}
	return domain.JobSeekerAccount{JobSeeker: *js}, nil
}

// ensureJobSeeker finds the job-seeker record for profileID or creates the
// default one.
func ensureJobSeeker(ctx context.Context, repo ports.JobSeekerRepository, profileID string, now time.Time) (*domain.JobSeeker, error) {
	js, err := repo.FindByID(ctx, profileID)
	if err == nil {
		return js, nil
	}
	if !errors.Is(err, domain.ErrJobSeekerNotFound) {
		return nil, fmt.Errorf("load job seeker: %w", err)
	}

	fresh := domain.NewJobSeeker(profileID, now)
	if err := repo.Create(ctx, &fresh); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return repo.FindByID(ctx, profileID)
		}
		return nil, fmt.Errorf("create job seeker: %w", err)
	}
	return &fresh, nil
}
