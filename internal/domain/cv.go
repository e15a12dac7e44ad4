package domain

import (
	"time"

	"github.com/google/uuid"
)

// CV is the 1:1 document owned by a job seeker. Child collections are loaded
// eagerly; they are meaningless without the CV and are deleted with it.
type CV struct {
	ID                uuid.UUID `json:"id" db:"id"`
	JobSeekerID       uuid.UUID `json:"job_seeker_id" db:"job_seeker_id"`
	ProfessionalTitle string    `json:"professional_title" db:"professional_title"`
	Bio               string    `json:"bio" db:"bio"`
	Skills            []string  `json:"skills"`
	Languages         []string  `json:"languages"`
	LinkedinURL       string    `json:"linkedin_url" db:"linkedin_url"`
	GithubURL         string    `json:"github_url" db:"github_url"`
	PortfolioURL      string    `json:"portfolio_url" db:"portfolio_url"`
	FileURL           string    `json:"file_url" db:"file_url"`
	TemplateName      string    `json:"template_name" db:"template_name"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	Educations      []Education      `json:"education_history"`
	WorkExperiences []WorkExperience `json:"work_experience"`
	Certifications  []Certification  `json:"certifications"`
}

type Education struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CVID         uuid.UUID  `json:"-" db:"cv_id"`
	Institution  string     `json:"institution" db:"institution"`
	Degree       string     `json:"degree" db:"degree"`
	FieldOfStudy string     `json:"field_of_study" db:"field_of_study"`
	StartDate    *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsCurrent    bool       `json:"is_current" db:"is_current"`
	Description  string     `json:"description" db:"description"`
}

type WorkExperience struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CVID        uuid.UUID  `json:"-" db:"cv_id"`
	Company     string     `json:"company" db:"company"`
	Position    string     `json:"position" db:"position"`
	StartDate   *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsCurrent   bool       `json:"is_current" db:"is_current"`
	Description string     `json:"description" db:"description"`
}

type Certification struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	CVID                uuid.UUID  `json:"-" db:"cv_id"`
	Name                string     `json:"name" db:"name"`
	IssuingOrganization string     `json:"issuing_organization" db:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date,omitempty" db:"issue_date"`
	ExpirationDate      *time.Time `json:"expiration_date,omitempty" db:"expiration_date"`
	CredentialID        string     `json:"credential_id" db:"credential_id"`
	CredentialURL       string     `json:"credential_url" db:"credential_url"`
}
