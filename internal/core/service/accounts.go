package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const defaultPosition = "Owner"

// accounts creates or attaches the organisation behind a company or vendor
// profile. Company names are unique, so an existing company of the same
// name is joined instead of duplicated.
type accounts struct {
	companies ports.CompanyRepository
	vendors   ports.VendorRepository
	log       zerolog.Logger
}

// attachCompany makes profileID an admin of the company called name,
// creating it from u when it does not exist. A company created here is
// removed again when the membership cannot be written.
func (a accounts) attachCompany(ctx context.Context, profileID, name, position string, u domain.CompanyUpdate, now time.Time) (*domain.CompanyAccount, error) {
	company, created, err := a.findOrCreateCompany(ctx, name, u, now)
	if err != nil {
		return nil, err
	}

	m := domain.CompanyMembership{
		ProfileID: profileID,
		CompanyID: company.ID,
		Position:  position,
		IsAdmin:   true,
		CreatedAt: now,
	}
	if err := a.companies.AddMember(ctx, &m); err != nil {
		if created {
			if delErr := a.companies.Delete(ctx, company.ID); delErr != nil {
				a.log.Error().Err(delErr).Str("company_id", company.ID).Msg("failed to roll back company after membership error")
			}
		}
		return nil, fmt.Errorf("add company member: %w", err)
	}
	return &domain.CompanyAccount{Company: *company, Membership: m}, nil
}

func (a accounts) findOrCreateCompany(ctx context.Context, name string, u domain.CompanyUpdate, now time.Time) (*domain.Company, bool, error) {
	existing, err := a.companies.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, false, fmt.Errorf("find company: %w", err)
	}

	c := domain.NewCompany(uuid.NewString(), name, u, now)
	if err := a.companies.Create(ctx, &c); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, fmt.Errorf("create company: %w", err)
		}
		// lost a race on the unique name
		existing, err = a.companies.FindByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("find company: %w", err)
		}
		return existing, false, nil
	}
	return &c, true, nil
}

// attachVendor mirrors attachCompany for vendors.
func (a accounts) attachVendor(ctx context.Context, profileID, name, position string, u domain.VendorUpdate, now time.Time) (*domain.VendorAccount, error) {
	vendor, created, err := a.findOrCreateVendor(ctx, name, u, now)
	if err != nil {
		return nil, err
	}

	m := domain.VendorMembership{
		ProfileID: profileID,
		VendorID:  vendor.ID,
		Position:  position,
		CreatedAt: now,
	}
	if err := a.vendors.AddMember(ctx, &m); err != nil {
		if created {
			if delErr := a.vendors.Delete(ctx, vendor.ID); delErr != nil {
				a.log.Error().Err(delErr).Str("vendor_id", vendor.ID).Msg("failed to roll back vendor after membership error")
			}
		}
		return nil, fmt.Errorf("add vendor member: %w", err)
	}
	return &domain.VendorAccount{Vendor: *vendor, Membership: m}, nil
}

func (a accounts) findOrCreateVendor(ctx context.Context, name string, u domain.VendorUpdate, now time.Time) (*domain.Vendor, bool, error) {
	existing, err := a.vendors.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrVendorNotFound) {
		return nil, false, fmt.Errorf("find vendor: %w", err)
	}

	v := domain.NewVendor(uuid.NewString(), name, u, now)
	if err := a.vendors.Create(ctx, &v); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, fmt.Errorf("create vendor: %w", err)
		}
		existing, err = a.vendors.FindByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("find vendor: %w", err)
		}
		return existing, false, nil
	}
	return &v, true, nil
}

func positionOr(p *string) string {
	if p != nil && *p != "" {
		return *p
	}
	return defaultPosition
}
