package domain

import (
	"strings"
	"time"
)

// JobType is the employment type of a posting.
type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobFreelance  JobType = "freelance"
	JobInternship JobType = "internship"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobFreelance, JobInternship:
		return true
	}
	return false
}

// ExperienceLevel is the seniority a posting targets.
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// Valid reports whether l is a known experience level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

const defaultCurrency = "USD"

// Job is a posting owned by exactly one company.
type Job struct {
	ID                  string          `json:"id" bson:"_id"`
	Title               string          `json:"title" bson:"title"`
	Description         string          `json:"description" bson:"description"`
	CompanyID           string          `json:"company_id" bson:"company_id"`
	Location            string          `json:"location" bson:"location"`
	JobType             JobType         `json:"job_type" bson:"job_type"`
	SalaryMin           *int            `json:"salary_min,omitempty" bson:"salary_min,omitempty"`
	SalaryMax           *int            `json:"salary_max,omitempty" bson:"salary_max,omitempty"`
	Currency            string          `json:"currency" bson:"currency"`
	ExperienceLevel     ExperienceLevel `json:"experience_level" bson:"experience_level"`
	SkillsRequired      []string        `json:"skills_required" bson:"skills_required"`
	Benefits            []string        `json:"benefits" bson:"benefits"`
	RemoteWorkAvailable bool            `json:"remote_work_available" bson:"remote_work_available"`
	ApplicationDeadline *time.Time      `json:"application_deadline,omitempty" bson:"application_deadline,omitempty"`
	IsActive            bool            `json:"is_active" bson:"is_active"`
	ApplicationsCount   int             `json:"applications_count" bson:"applications_count"`
	CreatedAt           time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" bson:"updated_at"`
}

// CompanySummary is the part of a company shown next to its job postings.
type CompanySummary struct {
	Name       string `json:"name" bson:"name"`
	LogoURL    string `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	IsVerified bool   `json:"is_verified" bson:"is_verified"`
}

// JobListing is a posting as job seekers browse it. Company is nil when the
// owning company no longer exists.
type JobListing struct {
	Job     `bson:",inline"`
	Company *CompanySummary `json:"company" bson:"company,omitempty"`
}

// JobInput carries the fields a company supplies when posting a job.
type JobInput struct {
	Title               string
	Description         string
	Location            string
	JobType             JobType
	SalaryMin           *int
	SalaryMax           *int
	Currency            string
	ExperienceLevel     ExperienceLevel
	SkillsRequired      []string
	Benefits            []string
	RemoteWorkAvailable bool
	ApplicationDeadline *time.Time
}

// Validate enforces posting invariants before anything is written.
func (in JobInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", "job title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewValidationError("description", "job description is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return NewValidationError("location", "location is required")
	}
	if len(cleanList(in.SkillsRequired)) == 0 {
		return NewValidationError("skills_required", "at least one skill is required")
	}
	if in.JobType != "" && !in.JobType.Valid() {
		return NewValidationError("job_type", "unknown job type")
	}
	if in.ExperienceLevel != "" && !in.ExperienceLevel.Valid() {
		return NewValidationError("experience_level", "unknown experience level")
	}
	return validateSalary(in.SalaryMin, in.SalaryMax)
}

// NewJob builds an active posting for companyID. applications_count starts at zero.
func NewJob(id, companyID string, in JobInput, now time.Time) Job {
	jt := in.JobType
	if jt == "" {
		jt = JobFullTime
	}
	lvl := in.ExperienceLevel
	if lvl == "" {
		lvl = LevelMid
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	return Job{
		ID:                  id,
		Title:               strings.TrimSpace(in.Title),
		Description:         strings.TrimSpace(in.Description),
		CompanyID:           companyID,
		Location:            strings.TrimSpace(in.Location),
		JobType:             jt,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		Currency:            currency,
		ExperienceLevel:     lvl,
		SkillsRequired:      cleanList(in.SkillsRequired),
		Benefits:            cleanList(in.Benefits),
		RemoteWorkAvailable: in.RemoteWorkAvailable,
		ApplicationDeadline: in.ApplicationDeadline,
		IsActive:            true,
		ApplicationsCount:   0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// JobUpdate is a partial job change; nil fields are untouched.
type JobUpdate struct {
	Title               *string
	Description         *string
	Location            *string
	JobType             *JobType
	SalaryMin           *int
	SalaryMax           *int
	Currency            *string
	ExperienceLevel     *ExperienceLevel
	SkillsRequired      *[]string
	Benefits            *[]string
	RemoteWorkAvailable *bool
	ApplicationDeadline *time.Time
	IsActive            *bool
}

// Validate checks the fields that are present.
func (u JobUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "job title is required")
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return NewValidationError("description", "job description is required")
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		return NewValidationError("location", "location is required")
	}
	if u.SkillsRequired != nil && len(cleanList(*u.SkillsRequired)) == 0 {
		return NewValidationError("skills_required", "at least one skill is required")
	}
	if u.JobType != nil && !u.JobType.Valid() {
		return NewValidationError("job_type", "unknown job type")
	}
	if u.ExperienceLevel != nil && !u.ExperienceLevel.Valid() {
		return NewValidationError("experience_level", "unknown experience level")
	}
	return validateSalary(u.SalaryMin, u.SalaryMax)
}

// Normalize trims strings and cleans lists so the stored values match NewJob.
func (u JobUpdate) Normalize() JobUpdate {
	out := u
	out.Title = trimmed(u.Title)
	out.Description = trimmed(u.Description)
	out.Location = trimmed(u.Location)
	if u.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*u.Currency))
		out.Currency = &c
	}
	if u.SkillsRequired != nil {
		s := cleanList(*u.SkillsRequired)
		out.SkillsRequired = &s
	}
	if u.Benefits != nil {
		b := cleanList(*u.Benefits)
		out.Benefits = &b
	}
	return out
}

// Apply patches j in place. Call Normalize first. The salary range is
// checked against the merged result, so a patch carrying only one bound
// cannot invert it; on error j is left unchanged.
func (u JobUpdate) Apply(j *Job, now time.Time) error {
	next := *j
	u.patch(&next, now)
	if err := validateSalary(next.SalaryMin, next.SalaryMax); err != nil {
		return err
	}
	*j = next
	return nil
}

func (u JobUpdate) patch(j *Job, now time.Time) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.JobType != nil {
		j.JobType = *u.JobType
	}
	if u.SalaryMin != nil {
		v := *u.SalaryMin
		j.SalaryMin = &v
	}
	if u.SalaryMax != nil {
		v := *u.SalaryMax
		j.SalaryMax = &v
	}
	if u.Currency != nil {
		j.Currency = *u.Currency
	}
	if u.ExperienceLevel != nil {
		j.ExperienceLevel = *u.ExperienceLevel
	}
	if u.SkillsRequired != nil {
		j.SkillsRequired = *u.SkillsRequired
	}
	if u.Benefits != nil {
		j.Benefits = *u.Benefits
	}
	if u.RemoteWorkAvailable != nil {
		j.RemoteWorkAvailable = *u.RemoteWorkAvailable
	}
	if u.ApplicationDeadline != nil {
		d := *u.ApplicationDeadline
		j.ApplicationDeadline = &d
	}
	if u.IsActive != nil {
		j.IsActive = *u.IsActive
	}
	j.UpdatedAt = now
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func validateSalary(min, max *int) error {
	if min != nil && *min < 0 {
		return NewValidationError("salary_min", "must not be negative")
	}
	if max != nil && *max < 0 {
		return NewValidationError("salary_max", "must not be negative")
	}
	if min != nil && max != nil && *min > *max {
		return NewValidationError("salary_min", "must not exceed salary_max")
	}
	return nil
}

// JobFilter narrows a company's job listing.
type JobFilter struct {
	ActiveOnly bool
	Limit      int
}

// CompanyStats summarises a company's postings for its dashboard.
type CompanyStats struct {
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
}
