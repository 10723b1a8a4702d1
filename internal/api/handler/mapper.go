package handler

import (
	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toJobInput(req jobRequest) ports.JobInput {
	return ports.JobInput{
		Title:        req.Title,
		Description:  req.Description,
		Company:      req.Company,
		Location:     req.Location,
		JobType:      req.JobType,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Requirements: req.Requirements,
		Status:       req.Status,
	}
}

func toJobFilter(q jobListQuery) ports.JobFilter {
	return ports.JobFilter{
		Title:     q.Title,
		Location:  q.Location,
		JobType:   domain.JobType(q.JobType),
		SalaryMin: q.SalaryMin,
		SalaryMax: q.SalaryMax,
	}
}

func toSubmitInput(jobID string, req applyRequest) ports.SubmitApplicationInput {
	return ports.SubmitApplicationInput{
		JobID:          jobID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		CoverLetter:    req.CoverLetter,
		ResumeURL:      req.ResumeURL,
		ResumeFilename: req.ResumeFilename,
	}
}

func toCreateBookingInput(req createBookingRequest) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		CandidateID:     req.CandidateID,
		EmployerID:      req.EmployerID,
		JobID:           req.JobID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	}
}

func toUpdateBookingInput(req updateBookingRequest) ports.UpdateBookingInput {
	return ports.UpdateBookingInput{
		Status:      req.Status,
		ScheduledAt: req.ScheduledAt,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
	}
}

func toProfileInput(req profileRequest) ports.ProfileInput {
	return ports.ProfileInput{
		Bio:             req.Bio,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		Location:        req.Location,
		HourlyRate:      req.HourlyRate,
		Availability:    req.Availability,
		ProfileImageURL: req.ProfileImageURL,
		ResumeURL:       req.ResumeURL,
		PortfolioURL:    req.PortfolioURL,
		LinkedinURL:     req.LinkedinURL,
		GithubURL:       req.GithubURL,
	}
}

func toTestimonialInput(req testimonialRequest) ports.TestimonialInput {
	return ports.TestimonialInput{
		Name:            req.Name,
		Role:            req.Role,
		Company:         req.Company,
		Location:        req.Location,
		Rating:          req.Rating,
		TestimonialText: req.TestimonialText,
		Outcome:         req.Outcome,
		Category:        req.Category,
	}
}
