package domain

import "time"

// JobSeeker holds the candidate-specific half of a job_seeker profile.
type JobSeeker struct {
	ID                   string           `json:"id" bson:"_id"`
	Skills               []string         `json:"skills" bson:"skills"`
	ExperienceYears      int              `json:"experience_years" bson:"experience_years"`
	SalaryExpectationMin *int             `json:"salary_expectation_min,omitempty" bson:"salary_expectation_min,omitempty"`
	SalaryExpectationMax *int             `json:"salary_expectation_max,omitempty" bson:"salary_expectation_max,omitempty"`
	Currency             string           `json:"currency,omitempty" bson:"currency,omitempty"`
	Education            []map[string]any `json:"education" bson:"education"`
	Experience           []map[string]any `json:"experience" bson:"experience"`
	Certifications       []string         `json:"certifications" bson:"certifications"`
	Languages            []string         `json:"languages" bson:"languages"`
	PreferredJobTypes    []string         `json:"preferred_job_types" bson:"preferred_job_types"`
	WorkAuthorization    string           `json:"work_authorization,omitempty" bson:"work_authorization,omitempty"`
	IsActive             bool             `json:"is_active" bson:"is_active"`
	CreatedAt            time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewJobSeeker returns the empty default record for profileID.
func NewJobSeeker(profileID string, now time.Time) JobSeeker {
	return JobSeeker{
		ID:                profileID,
		Skills:            []string{},
		ExperienceYears:   0,
		Education:         []map[string]any{},
		Experience:        []map[string]any{},
		Certifications:    []string{},
		Languages:         []string{},
		PreferredJobTypes: []string{},
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// JobSeekerUpdate is a partial change; nil fields are untouched.
type JobSeekerUpdate struct {
	Skills               *[]string         `json:"skills,omitempty"`
	ExperienceYears      *int              `json:"experience_years,omitempty"`
	SalaryExpectationMin *int              `json:"salary_expectation_min,omitempty"`
	SalaryExpectationMax *int              `json:"salary_expectation_max,omitempty"`
	Currency             *string           `json:"currency,omitempty"`
	Education            *[]map[string]any `json:"education,omitempty"`
	Experience           *[]map[string]any `json:"experience,omitempty"`
	Certifications       *[]string         `json:"certifications,omitempty"`
	Languages            *[]string         `json:"languages,omitempty"`
	PreferredJobTypes    *[]string         `json:"preferred_job_types,omitempty"`
	WorkAuthorization    *string           `json:"work_authorization,omitempty"`
	IsActive             *bool             `json:"is_active,omitempty"`
}

// Validate checks numeric ranges on the fields that are present.
func (u JobSeekerUpdate) Validate() error {
	if u.ExperienceYears != nil && *u.ExperienceYears < 0 {
		return NewValidationError("experience_years", "must not be negative")
	}
	if u.SalaryExpectationMin != nil && u.SalaryExpectationMax != nil &&
		*u.SalaryExpectationMin > *u.SalaryExpectationMax {
		return NewValidationError("salary_expectation_min", "must not exceed salary_expectation_max")
	}
	return nil
}

// Apply patches js in place.
func (u JobSeekerUpdate) Apply(js *JobSeeker, now time.Time) {
	if u.Skills != nil {
		js.Skills = cleanList(*u.Skills)
	}
	if u.ExperienceYears != nil {
		js.ExperienceYears = *u.ExperienceYears
	}
	if u.SalaryExpectationMin != nil {
		v := *u.SalaryExpectationMin
		js.SalaryExpectationMin = &v
	}
	if u.SalaryExpectationMax != nil {
		v := *u.SalaryExpectationMax
		js.SalaryExpectationMax = &v
	}
	setString(&js.Currency, u.Currency)
	if u.Education != nil {
		js.Education = *u.Education
	}
	if u.Experience != nil {
		js.Experience = *u.Experience
	}
	if u.Certifications != nil {
		js.Certifications = cleanList(*u.Certifications)
	}
	if u.Languages != nil {
		js.Languages = cleanList(*u.Languages)
	}
	if u.PreferredJobTypes != nil {
		js.PreferredJobTypes = cleanList(*u.PreferredJobTypes)
	}
	setString(&js.WorkAuthorization, u.WorkAuthorization)
	if u.IsActive != nil {
		js.IsActive = *u.IsActive
	}
	js.UpdatedAt = now
}
