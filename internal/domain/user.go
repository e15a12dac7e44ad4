package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole accepts "employer", "EMPLOYER" and the legacy "ROLE_EMPLOYER"
// spelling that older clients still send.
func ParseRole(value string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.TrimPrefix(v, "ROLE_")
	switch Role(v) {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return Role(v), nil
	}
	return "", fmt.Errorf("unknown role: %q", value)
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func ParseApprovalStatus(value string) (ApprovalStatus, error) {
	switch s := ApprovalStatus(strings.ToUpper(strings.TrimSpace(value))); s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown approval status: %q", value)
}

// User is the single identity record for every role. Role-specific data lives
// in the optional profile payloads; the role tag says which one is set.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	Role         Role      `json:"role" db:"role"`
	IsEnabled    bool      `json:"is_enabled" db:"is_enabled"`
	IsLocked     bool      `json:"is_locked" db:"is_locked"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Seeker   *JobSeekerProfile `json:"seeker,omitempty"`
	Employer *EmployerProfile  `json:"employer,omitempty"`
}

type JobSeekerProfile struct {
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Address           string     `json:"address" db:"address"`
	City              string     `json:"city" db:"city"`
	Country           string     `json:"country" db:"country"`
	PostalCode        string     `json:"postal_code" db:"postal_code"`
	ProfileSummary    string     `json:"profile_summary" db:"profile_summary"`
	ProfileHeadline   string     `json:"profile_headline" db:"profile_headline"`
	ProfilePictureURL string     `json:"profile_picture_url" db:"profile_picture_url"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty" db:"years_of_experience"`
}

type EmployerProfile struct {
	CompanyName        string         `json:"company_name" db:"company_name"`
	CompanyDescription string         `json:"company_description" db:"company_description"`
	CompanyWebsite     string         `json:"company_website" db:"company_website"`
	CompanyLogoURL     string         `json:"company_logo_url" db:"company_logo_url"`
	CompanySize        string         `json:"company_size" db:"company_size"`
	Industry           string         `json:"industry" db:"industry"`
	IsApproved         bool           `json:"is_approved" db:"is_approved"`
	ApprovalStatus     ApprovalStatus `json:"approval_status" db:"approval_status"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ApprovedEmployer reports whether the user is an employer cleared to post jobs.
func (u *User) ApprovedEmployer() bool {
	return u.Role == RoleEmployer && u.Employer != nil && u.Employer.IsApproved
}
