package handler

import "time"

type createJobRequest struct {
	Title               string     `json:"title"                 validate:"required"`
	Description         string     `json:"description"           validate:"required"`
	Location            string     `json:"location"              validate:"required"`
	JobType             string     `json:"job_type"              validate:"omitempty,oneof=full_time part_time contract freelance internship"`
	SalaryMin           *int       `json:"salary_min"            validate:"omitempty,gte=0"`
	SalaryMax           *int       `json:"salary_max"            validate:"omitempty,gte=0"`
	Currency            string     `json:"currency"              validate:"omitempty,len=3"`
	ExperienceLevel     string     `json:"experience_level"      validate:"omitempty,oneof=entry mid senior executive"`
	SkillsRequired      []string   `json:"skills_required"       validate:"required,min=1"`
	Benefits            []string   `json:"benefits"`
	RemoteWorkAvailable bool       `json:"remote_work_available"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

// updateJobRequest is a partial change; absent fields are left untouched.
type updateJobRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	JobType             *string    `json:"job_type"              validate:"omitempty,oneof=full_time part_time contract freelance internship"`
	SalaryMin           *int       `json:"salary_min"            validate:"omitempty,gte=0"`
	SalaryMax           *int       `json:"salary_max"            validate:"omitempty,gte=0"`
	Currency            *string    `json:"currency"              validate:"omitempty,len=3"`
	ExperienceLevel     *string    `json:"experience_level"      validate:"omitempty,oneof=entry mid senior executive"`
	SkillsRequired      *[]string  `json:"skills_required"`
	Benefits            *[]string  `json:"benefits"`
	RemoteWorkAvailable *bool      `json:"remote_work_available"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	IsActive            *bool      `json:"is_active"`
}

type deleteJobResponse struct {
	Deleted int64 `json:"deleted"`
}
