package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Account is the role-specific half of a CompositeView. The unexported
// method seals the set to CompanyAccount, VendorAccount and JobSeekerAccount.
type Account interface {
	Role() Role
	sealed()
}

// CompanyAccount is the company a company-role profile belongs to.
type CompanyAccount struct {
	Company    Company           `json:"company"`
	Membership CompanyMembership `json:"membership"`
}

func (CompanyAccount) Role() Role { return RoleCompany }
func (CompanyAccount) sealed()    {}

// VendorAccount is the vendor a vendor-role profile belongs to.
type VendorAccount struct {
	Vendor     Vendor           `json:"vendor"`
	Membership VendorMembership `json:"membership"`
}

func (VendorAccount) Role() Role { return RoleVendor }
func (VendorAccount) sealed()    {}

// JobSeekerAccount is the candidate record of a job_seeker profile.
type JobSeekerAccount struct {
	JobSeeker JobSeeker `json:"job_seeker"`
}

func (JobSeekerAccount) Role() Role { return RoleJobSeeker }
func (JobSeekerAccount) sealed()    {}

// CompositeView is the assembled user: a profile plus at most one account
// whose role matches profile.Role. A missing account is a valid state, e.g.
// a company profile without a membership.
type CompositeView struct {
	profile Profile
	account Account
}

// NewView assembles a view, rejecting an account whose role disagrees with
// the profile.
func NewView(p Profile, acc Account) (*CompositeView, error) {
	if acc != nil && acc.Role() != p.Role {
		return nil, fmt.Errorf("%w: %s account on %s profile", ErrRoleMismatch, acc.Role(), p.Role)
	}
	return &CompositeView{profile: p, account: acc}, nil
}

func (v *CompositeView) Profile() Profile { return v.profile }
func (v *CompositeView) Account() Account { return v.account }
func (v *CompositeView) IdentityID() string {
	return v.profile.ID
}

// Company returns the company account, if any.
func (v *CompositeView) Company() (CompanyAccount, bool) {
	a, ok := v.account.(CompanyAccount)
	return a, ok
}

// Vendor returns the vendor account, if any.
func (v *CompositeView) Vendor() (VendorAccount, bool) {
	a, ok := v.account.(VendorAccount)
	return a, ok
}

// JobSeeker returns the job-seeker account, if any.
func (v *CompositeView) JobSeeker() (JobSeekerAccount, bool) {
	a, ok := v.account.(JobSeekerAccount)
	return a, ok
}

// WithProfile returns a copy carrying p. The account is kept only while the
// role is unchanged.
func (v *CompositeView) WithProfile(p Profile) *CompositeView {
	out := &CompositeView{profile: p, account: v.account}
	if out.account != nil && out.account.Role() != p.Role {
		out.account = nil
	}
	return out
}

// WithAccount returns a copy carrying acc.
func (v *CompositeView) WithAccount(acc Account) (*CompositeView, error) {
	return NewView(v.profile, acc)
}

type viewEnvelope struct {
	Profile   Profile           `json:"profile"`
	Company   *CompanyAccount   `json:"company,omitempty"`
	Vendor    *VendorAccount    `json:"vendor,omitempty"`
	JobSeeker *JobSeekerAccount `json:"job_seeker,omitempty"`
}

// MarshalJSON renders {profile, company?, vendor?, job_seeker?}.
func (v *CompositeView) MarshalJSON() ([]byte, error) {
	env := viewEnvelope{Profile: v.profile}
	switch a := v.account.(type) {
	case CompanyAccount:
		env.Company = &a
	case VendorAccount:
		env.Vendor = &a
	case JobSeekerAccount:
		env.JobSeeker = &a
	}
	return json.Marshal(env)
}

// UnmarshalJSON accepts the MarshalJSON shape and rejects envelopes carrying
// more than one account.
func (v *CompositeView) UnmarshalJSON(data []byte) error {
	var env viewEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	var accounts []Account
	if env.Company != nil {
		accounts = append(accounts, *env.Company)
	}
	if env.Vendor != nil {
		accounts = append(accounts, *env.Vendor)
	}
	if env.JobSeeker != nil {
		accounts = append(accounts, *env.JobSeeker)
	}
	if len(accounts) > 1 {
		return errors.New("composite view: more than one account populated")
	}
	var acc Account
	if len(accounts) == 1 {
		acc = accounts[0]
	}
	built, err := NewView(env.Profile, acc)
	if err != nil {
		return err
	}
	*v = *built
	return nil
}
