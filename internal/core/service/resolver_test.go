package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

func TestResolver_ProvisionsProfileOnce(t *testing.T) {
	repos, profiles, _, _, seekers, _ := newRepos()
	r := NewResolver(repos, zerolog.Nop())
	identity := domain.Identity{ID: "u1", Email: "hana@example.com"}

	first, err := r.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := r.Resolve(context.Background(), identity)
	if err != nil {
		t.Fatalf("second Resolve returned error: %v", err)
	}

	if profiles.creates != 1 {
		t.Fatalf("expected exactly one profile insert, got %d", profiles.creates)
	}
	p := first.Profile()
	if p.FullName != "hana" || p.Role != domain.RoleJobSeeker {
		t.Fatalf("unexpected default profile: %+v", p)
	}
	if second.Profile().ID != p.ID {
		t.Fatalf("expected same profile on second resolve")
	}

	acc, ok := first.JobSeeker()
	if !ok {
		t.Fatalf("expected job seeker account")
	}
	if len(acc.JobSeeker.Skills) != 0 || acc.JobSeeker.ExperienceYears != 0 || !acc.JobSeeker.IsActive {
		t.Fatalf("unexpected job seeker defaults: %+v", acc.JobSeeker)
	}
	if seekers.creates != 1 {
		t.Fatalf("expected one job seeker insert, got %d", seekers.creates)
	}
}

func TestResolver_UsesIdentityMetadata(t *testing.T) {
	repos, _, _, _, _, _ := newRepos()
	r := NewResolver(repos, zerolog.Nop())

	view, err := r.Resolve(context.Background(), domain.Identity{
		ID:       "u2",
		Email:    "ivan@example.com",
		Metadata: domain.IdentityMetadata{FullName: "Ivan Petrov", Role: "vendor"},
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.Profile().FullName != "Ivan Petrov" || view.Profile().Role != domain.RoleVendor {
		t.Fatalf("unexpected profile: %+v", view.Profile())
	}
	if view.Account() != nil {
		t.Fatalf("vendor without membership must have no account, got %+v", view.Account())
	}
}

func TestResolver_CompanyWithoutMembership(t *testing.T) {
	repos, profiles, companies, _, _, _ := newRepos()
	now := time.Now().UTC()
	profiles.byID["u3"] = &domain.Profile{ID: "u3", Email: "jo@example.com", Role: domain.RoleCompany, CreatedAt: now}
	companies.byID["c-other"] = &domain.Company{ID: "c-other", Name: "Other"}

	view, err := NewResolver(repos, zerolog.Nop()).Resolve(context.Background(), domain.Identity{ID: "u3"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if _, ok := view.Company(); ok {
		t.Fatalf("company must be absent without a membership")
	}
	if len(companies.byID) != 1 {
		t.Fatalf("resolver must not fabricate companies")
	}
}

func TestResolver_CompanyWithMembership(t *testing.T) {
	repos, profiles, companies, _, _, _ := newRepos()
	profiles.byID["u4"] = &domain.Profile{ID: "u4", Role: domain.RoleCompany}
	companies.byID["c1"] = &domain.Company{ID: "c1", Name: "Acme"}
	companies.members["u4"] = &domain.CompanyMembership{ProfileID: "u4", CompanyID: "c1", IsAdmin: true}

	view, err := NewResolver(repos, zerolog.Nop()).Resolve(context.Background(), domain.Identity{ID: "u4"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	acc, ok := view.Company()
	if !ok || acc.Company.Name != "Acme" || !acc.Membership.IsAdmin {
		t.Fatalf("unexpected company account: %+v", acc)
	}
}

func TestResolver_LegacyRoleResolvesAsCanonical(t *testing.T) {
	repos, profiles, companies, _, _, _ := newRepos()
	profiles.byID["u6"] = &domain.Profile{ID: "u6", Role: "employer"}
	companies.byID["c6"] = &domain.Company{ID: "c6", Name: "Old Co"}
	companies.members["u6"] = &domain.CompanyMembership{ProfileID: "u6", CompanyID: "c6", IsAdmin: true}

	view, err := NewResolver(repos, zerolog.Nop()).Resolve(context.Background(), domain.Identity{ID: "u6"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.Profile().Role != domain.RoleCompany {
		t.Fatalf("expected canonical company role, got %q", view.Profile().Role)
	}
	if acc, ok := view.Company(); !ok || acc.Company.Name != "Old Co" {
		t.Fatalf("expected legacy employer to resolve its company, got %+v", view.Account())
	}
}

func TestResolver_DanglingMembership(t *testing.T) {
	repos, profiles, companies, _, _, _ := newRepos()
	profiles.byID["u5"] = &domain.Profile{ID: "u5", Role: domain.RoleCompany}
	companies.members["u5"] = &domain.CompanyMembership{ProfileID: "u5", CompanyID: "gone"}

	view, err := NewResolver(repos, zerolog.Nop()).Resolve(context.Background(), domain.Identity{ID: "u5"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if view.Account() != nil {
		t.Fatalf("expected no account for dangling membership")
	}
}

func TestResolver_ConcurrentProvisioning(t *testing.T) {
	repos, profiles, _, _, _, _ := newRepos()
	profiles.missFirst = true
	profiles.byID["u6"] = &domain.Profile{ID: "u6", Role: domain.RoleJobSeeker, FullName: "Kim"}
	r := NewResolver(repos, zerolog.Nop())

	p, err := r.profile(context.Background(), domain.Identity{ID: "u6"})
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if p.FullName != "Kim" {
		t.Fatalf("expected existing profile, got %+v", p)
	}
}

func TestResolver_BackendFailureAborts(t *testing.T) {
	repos, profiles, _, _, _, _ := newRepos()
	boom := errors.New("connection reset")
	profiles.findErr = boom

	view, err := NewResolver(repos, zerolog.Nop()).Resolve(context.Background(), domain.Identity{ID: "u7"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if view != nil {
		t.Fatalf("expected no view on failure")
	}
}
