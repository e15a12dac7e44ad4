package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFreelance  JobType = "FREELANCE"
	JobTypeRemote     JobType = "REMOTE"
)

var JobTypes = []JobType{
	JobTypeFullTime, JobTypePartTime, JobTypeContract,
	JobTypeInternship, JobTypeFreelance, JobTypeRemote,
}

func ParseJobType(value string) (JobType, error) {
	v := JobType(strings.ToUpper(strings.TrimSpace(value)))
	for _, t := range JobTypes {
		if v == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown job type: %q", value)
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceJunior    ExperienceLevel = "JUNIOR"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceLead      ExperienceLevel = "LEAD"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

var ExperienceLevels = []ExperienceLevel{
	ExperienceEntry, ExperienceJunior, ExperienceMid,
	ExperienceSenior, ExperienceLead, ExperienceExecutive,
}

func ParseExperienceLevel(value string) (ExperienceLevel, error) {
	v := ExperienceLevel(strings.ToUpper(strings.TrimSpace(value)))
	for _, l := range ExperienceLevels {
		if v == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown experience level: %q", value)
}

type Job struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	EmployerID          uuid.UUID       `json:"employer_id" db:"employer_id"`
	Title               string          `json:"title" db:"title"`
	Description         string          `json:"description" db:"description"`
	Requirements        string          `json:"requirements" db:"requirements"`
	Responsibilities    string          `json:"responsibilities" db:"responsibilities"`
	JobType             JobType         `json:"job_type" db:"job_type"`
	ExperienceLevel     ExperienceLevel `json:"experience_level" db:"experience_level"`
	Location            string          `json:"location" db:"location"`
	SalaryMin           *int64          `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax           *int64          `json:"salary_max,omitempty" db:"salary_max"`
	SalaryCurrency      string          `json:"salary_currency" db:"salary_currency"`
	IsRemote            bool            `json:"is_remote" db:"is_remote"`
	IsActive            bool            `json:"is_active" db:"is_active"`
	ApprovalStatus      ApprovalStatus  `json:"approval_status" db:"approval_status"`
	ApplicationDeadline *time.Time      `json:"application_deadline,omitempty" db:"application_deadline"`
	Vacancies           *int            `json:"vacancies,omitempty" db:"vacancies"`
	RequiredSkills      []string        `json:"required_skills"`
	Benefits            []string        `json:"benefits"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`

	// Denormalized for responses, filled by joins.
	CompanyName      string `json:"company_name,omitempty"`
	EmployerName     string `json:"employer_name,omitempty"`
	ApplicationCount int64  `json:"application_count"`
}

// PubliclyVisible is the single listing-visibility rule: a job shows up in
// public listings and search only when active and admin-approved.
func (j *Job) PubliclyVisible() bool {
	return j.IsActive && j.ApprovalStatus == ApprovalApproved
}

// JobSearchFilter holds the optional, conjunctive search criteria.
type JobSearchFilter struct {
	Title           string
	Location        string
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
	MinSalary       *int64
	MaxSalary       *int64
	IsRemote        *bool
}

// JobStats feeds the admin dashboard.
type JobStats struct {
	Total    int64             `json:"total"`
	Active   int64             `json:"active"`
	Inactive int64             `json:"inactive"`
	ByType   map[JobType]int64 `json:"by_type"`
}
