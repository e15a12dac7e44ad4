package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repositories return (nil, nil) when an entity is absent; callers decide
// whether that is a NotFoundError.

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *User) error
	SetEmployerApproval(ctx context.Context, id uuid.UUID, status ApprovalStatus, approved bool) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	SetLocked(ctx context.Context, id uuid.UUID, locked bool) error
	// Delete removes the user and everything owned by it (jobs, applications,
	// CV) in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, role *Role, offset, limit int) ([]*User, int64, error)
	PendingEmployers(ctx context.Context) ([]*User, error)
	Counts(ctx context.Context) (UserCounts, error)
}

type UserCounts struct {
	Total      int64 `json:"total"`
	JobSeekers int64 `json:"job_seekers"`
	Employers  int64 `json:"employers"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	// Update overwrites every mutable field and replaces the skill/benefit
	// lists, all in one transaction. Ownership is encoded in the WHERE clause:
	// a job belonging to another employer behaves as missing.
	Update(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	GetByIDForEmployer(ctx context.Context, id, employerID uuid.UUID) (*Job, error)
	// Delete removes the job and its applications in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	SetActiveForEmployer(ctx context.Context, id, employerID uuid.UUID, active bool) (bool, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, offset, limit int) ([]*Job, int64, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*Job, int64, error)
	ListByApproval(ctx context.Context, status ApprovalStatus, offset, limit int) ([]*Job, int64, error)
	Search(ctx context.Context, filter JobSearchFilter, offset, limit int) ([]*Job, int64, error)
	Stats(ctx context.Context) (JobStats, error)
}

type ApplicationRepository interface {
	// Create relies on the unique (job_id, job_seeker_id) index and returns a
	// DuplicateResourceError on conflict, so two concurrent applies cannot
	// both succeed.
	Create(ctx context.Context, app *JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*JobApplication, error)
	Exists(ctx context.Context, jobID, jobSeekerID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySeeker(ctx context.Context, jobSeekerID uuid.UUID, status *ApplicationStatus, offset, limit int) ([]*JobApplication, int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, offset, limit int) ([]*JobApplication, int64, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*JobApplication, int64, error)
	CountsByStatus(ctx context.Context) (map[ApplicationStatus]int64, error)
	Count(ctx context.Context) (int64, error)
}

type CVRepository interface {
	GetBySeeker(ctx context.Context, jobSeekerID uuid.UUID) (*CV, error)
	// Upsert creates the CV row on first write and replaces the skill and
	// language lists in the same transaction.
	Upsert(ctx context.Context, cv *CV) error
	SetFileURL(ctx context.Context, jobSeekerID uuid.UUID, fileURL string) error
	AddEducation(ctx context.Context, cvID uuid.UUID, edu *Education) error
	AddWorkExperience(ctx context.Context, cvID uuid.UUID, exp *WorkExperience) error
	AddCertification(ctx context.Context, cvID uuid.UUID, cert *Certification) error
}

// Session is a server-side record of an issued token. Revoking it invalidates
// the token before its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
}

type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// AuthService is the registration/login contract used by handlers and tests.
type AuthService interface {
	Register(ctx context.Context, req RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, identifier, password, userAgent, ipAddress string) (*AuthResult, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	EnsureAdmin(ctx context.Context, email, username, password string) error
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	Role      Role
	FirstName string
	LastName  string
	Phone     string
	// Job seeker specific
	ProfileHeadline   string
	YearsOfExperience *int
	// Employer specific
	CompanyName    string
	CompanyWebsite string

	UserAgent string
	IPAddress string
}

type AuthResult struct {
	User        *User     `json:"user"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionID   string    `json:"session_id"`
}
