package domain

import (
	"strings"
	"time"
)

// ApplicationStatus represents the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// hired and rejected are terminal.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplied:     {ApplicationShortlisted, ApplicationRejected},
	ApplicationShortlisted: {ApplicationHired, ApplicationRejected},
}

// ParseApplicationStatus rejects anything outside the four lifecycle states.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(strings.TrimSpace(s)); st {
	case ApplicationApplied, ApplicationShortlisted, ApplicationHired, ApplicationRejected:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s ApplicationStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Application is a candidate's submission against a job.
// At most one exists per (JobID, UserID).
type Application struct {
	ID             string            `json:"id" db:"id"`
	JobID          string            `json:"job_id" db:"job_id"`
	UserID         string            `json:"user_id" db:"user_id"`
	Status         ApplicationStatus `json:"status" db:"status"`
	FullName       string            `json:"full_name" db:"full_name"`
	Email          string            `json:"email" db:"email"`
	Phone          string            `json:"phone" db:"phone"`
	CoverLetter    string            `json:"cover_letter" db:"cover_letter"`
	ResumeURL      string            `json:"resume_url" db:"resume_url"`
	ResumeFilename string            `json:"resume_filename" db:"resume_filename"`
	AppliedAt      time.Time         `json:"applied_at" db:"applied_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationEvent records a single status transition for the audit trail.
type ApplicationEvent struct {
	ApplicationID string            `json:"application_id" bson:"application_id"`
	JobID         string            `json:"job_id" bson:"job_id"`
	ActorID       string            `json:"actor_id" bson:"actor_id"`
	ActorRole     Role              `json:"actor_role" bson:"actor_role"`
	From          ApplicationStatus `json:"from" bson:"from"`
	To            ApplicationStatus `json:"to" bson:"to"`
	OccurredAt    time.Time         `json:"occurred_at" bson:"occurred_at"`
}
