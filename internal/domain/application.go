package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "PENDING"
	ApplicationReviewed    ApplicationStatus = "REVIEWED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending, ApplicationReviewed, ApplicationShortlisted,
	ApplicationRejected, ApplicationAccepted,
}

func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	v := ApplicationStatus(strings.ToUpper(strings.TrimSpace(value)))
	for _, s := range ApplicationStatuses {
		if v == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown application status: %q", value)
}

// JobApplication links a seeker to a job. At most one exists per (job, seeker)
// pair; the storage layer enforces that with a unique index.
type JobApplication struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	JobID           uuid.UUID         `json:"job_id" db:"job_id"`
	JobSeekerID     uuid.UUID         `json:"job_seeker_id" db:"job_seeker_id"`
	CoverLetter     string            `json:"cover_letter" db:"cover_letter"`
	CVFileURL       string            `json:"cv_file_url" db:"cv_file_url"`
	ApplicationDate time.Time         `json:"application_date" db:"application_date"`
	Status          ApplicationStatus `json:"status" db:"status"`
	Notes           string            `json:"notes" db:"notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	// Denormalized for responses, filled by joins.
	JobTitle       string    `json:"job_title,omitempty"`
	EmployerID     uuid.UUID `json:"employer_id,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	ApplicantName  string    `json:"applicant_name,omitempty"`
	ApplicantEmail string    `json:"applicant_email,omitempty"`
}
