package service

import (
	"context"
	"time"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type JobService interface {
	CreateJob(ctx context.Context, employerID uuid.UUID, req *dto.JobRequest) (*domain.Job, error)
	UpdateJob(ctx context.Context, jobID, employerID uuid.UUID, req *dto.JobRequest) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID, employerID uuid.UUID) error
	ToggleJobStatus(ctx context.Context, jobID, employerID uuid.UUID, active bool) error
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
	GetAllActiveJobs(ctx context.Context, offset, limit int) ([]*domain.Job, int64, error)
	GetJobsByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.Job, int64, error)
	SearchJobs(ctx context.Context, filter domain.JobSearchFilter, offset, limit int) ([]*domain.Job, int64, error)
}

type jobService struct {
	jobRepo   domain.JobRepository
	userRepo  domain.UserRepository
	sanitizer *domain.Sanitizer
}

func NewJobService(jobRepo domain.JobRepository, userRepo domain.UserRepository) JobService {
	return &jobService{
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		sanitizer: domain.NewSanitizer(),
	}
}

func (s *jobService) CreateJob(ctx context.Context, employerID uuid.UUID, req *dto.JobRequest) (*domain.Job, error) {
	employer, err := s.userRepo.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if employer == nil {
		return nil, domain.NewNotFoundError("Employer not found")
	}
	if !employer.ApprovedEmployer() {
		return nil, domain.NewForbiddenError("Employer account is not approved yet")
	}

	job, err := s.jobFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job.ID = uuid.New()
	job.EmployerID = employerID
	// New postings go live for the employer immediately but stay out of public
	// listings until an admin approves them.
	job.IsActive = true
	job.ApprovalStatus = domain.ApprovalPending
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Info().
		Str("job_id", job.ID.String()).
		Str("employer_id", employerID.String()).
		Msg("Job created")

	return s.jobRepo.GetByID(ctx, job.ID)
}

func (s *jobService) UpdateJob(ctx context.Context, jobID, employerID uuid.UUID, req *dto.JobRequest) (*domain.Job, error) {
	existing, err := s.jobRepo.GetByIDForEmployer(ctx, jobID, employerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("Job not found")
	}

	job, err := s.jobFromRequest(req)
	if err != nil {
		return nil, err
	}
	job.ID = jobID
	job.EmployerID = employerID
	job.UpdatedAt = time.Now()
	if job.RequiredSkills == nil {
		job.RequiredSkills = existing.RequiredSkills
	}
	if job.Benefits == nil {
		job.Benefits = existing.Benefits
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return s.jobRepo.GetByID(ctx, jobID)
}

func (s *jobService) DeleteJob(ctx context.Context, jobID, employerID uuid.UUID) error {
	existing, err := s.jobRepo.GetByIDForEmployer(ctx, jobID, employerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFoundError("Job not found")
	}
	return s.jobRepo.Delete(ctx, jobID)
}

func (s *jobService) ToggleJobStatus(ctx context.Context, jobID, employerID uuid.UUID, active bool) error {
	updated, err := s.jobRepo.SetActiveForEmployer(ctx, jobID, employerID, active)
	if err != nil {
		return err
	}
	if !updated {
		return domain.NewNotFoundError("Job not found")
	}
	return nil
}

func (s *jobService) GetJobByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.NewNotFoundError("Job not found")
	}
	return job, nil
}

func (s *jobService) GetAllActiveJobs(ctx context.Context, offset, limit int) ([]*domain.Job, int64, error) {
	return s.jobRepo.ListActive(ctx, offset, limit)
}

func (s *jobService) GetJobsByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.Job, int64, error) {
	return s.jobRepo.ListByEmployer(ctx, employerID, offset, limit)
}

func (s *jobService) SearchJobs(ctx context.Context, filter domain.JobSearchFilter, offset, limit int) ([]*domain.Job, int64, error) {
	return s.jobRepo.Search(ctx, filter, offset, limit)
}

// jobFromRequest validates the enum and date fields and builds a job with the
// free-text fields sanitized. List fields stay nil when the request omits them.
func (s *jobService) jobFromRequest(req *dto.JobRequest) (*domain.Job, error) {
	jobType, err := domain.ParseJobType(req.JobType)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"jobType": err.Error()})
	}
	level, err := domain.ParseExperienceLevel(req.ExperienceLevel)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"experienceLevel": err.Error()})
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, domain.NewValidationError(map[string]string{"salaryMin": "must not exceed salaryMax"})
	}

	var deadline *time.Time
	if req.ApplicationDeadline != "" {
		d, err := time.Parse("2006-01-02", req.ApplicationDeadline)
		if err != nil {
			return nil, domain.NewValidationError(map[string]string{"applicationDeadline": "must be a date in YYYY-MM-DD format"})
		}
		deadline = &d
	}

	job := &domain.Job{
		Title:               s.sanitizer.Clean(req.Title),
		Description:         s.sanitizer.Clean(req.Description),
		Requirements:        s.sanitizer.Clean(req.Requirements),
		Responsibilities:    s.sanitizer.Clean(req.Responsibilities),
		JobType:             jobType,
		ExperienceLevel:     level,
		Location:            s.sanitizer.Clean(req.Location),
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		IsRemote:            req.IsRemote,
		ApplicationDeadline: deadline,
		Vacancies:           req.Vacancies,
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = s.sanitizer.CleanAll(*req.RequiredSkills)
	}
	if req.Benefits != nil {
		job.Benefits = s.sanitizer.CleanAll(*req.Benefits)
	}
	return job, nil
}
