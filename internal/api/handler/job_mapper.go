package handler

import (
	"github.com/talentbridge/job-portal/internal/core/domain"
)

// --- Request → Service input ---

func toJobInput(req createJobRequest) domain.JobInput {
	return domain.JobInput{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		JobType:             domain.JobType(req.JobType),
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		Currency:            req.Currency,
		ExperienceLevel:     domain.ExperienceLevel(req.ExperienceLevel),
		SkillsRequired:      req.SkillsRequired,
		Benefits:            req.Benefits,
		RemoteWorkAvailable: req.RemoteWorkAvailable,
		ApplicationDeadline: req.ApplicationDeadline,
	}
}

func toJobUpdate(req updateJobRequest) domain.JobUpdate {
	u := domain.JobUpdate{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		Currency:            req.Currency,
		SkillsRequired:      req.SkillsRequired,
		Benefits:            req.Benefits,
		RemoteWorkAvailable: req.RemoteWorkAvailable,
		ApplicationDeadline: req.ApplicationDeadline,
		IsActive:            req.IsActive,
	}
	if req.JobType != nil {
		jt := domain.JobType(*req.JobType)
		u.JobType = &jt
	}
	if req.ExperienceLevel != nil {
		lvl := domain.ExperienceLevel(*req.ExperienceLevel)
		u.ExperienceLevel = &lvl
	}
	return u
}
