package service

import (
	"context"
	"time"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ApplicationService interface {
	ApplyToJob(ctx context.Context, jobSeekerID uuid.UUID, req *dto.ApplicationRequest) (*domain.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, employerID uuid.UUID, req *dto.ApplicationStatusRequest) (*domain.JobApplication, error)
	WithdrawApplication(ctx context.Context, applicationID, jobSeekerID uuid.UUID) error
	HasApplied(ctx context.Context, jobID, jobSeekerID uuid.UUID) (bool, error)
	GetApplication(ctx context.Context, applicationID, userID uuid.UUID, role domain.Role) (*domain.JobApplication, error)
	GetApplicationsBySeeker(ctx context.Context, jobSeekerID uuid.UUID, status *domain.ApplicationStatus, offset, limit int) ([]*domain.JobApplication, int64, error)
	GetApplicationsByJob(ctx context.Context, jobID, employerID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error)
	GetApplicationsByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error)
}

type applicationService struct {
	appRepo   domain.ApplicationRepository
	jobRepo   domain.JobRepository
	sanitizer *domain.Sanitizer
}

func NewApplicationService(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) ApplicationService {
	return &applicationService{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		sanitizer: domain.NewSanitizer(),
	}
}

func (s *applicationService) ApplyToJob(ctx context.Context, jobSeekerID uuid.UUID, req *dto.ApplicationRequest) (*domain.JobApplication, error) {
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"jobId": "must be a valid UUID"})
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.NewNotFoundError("Job not found")
	}
	if !job.PubliclyVisible() {
		return nil, domain.NewInvalidStateError("This job is not accepting applications")
	}
	if job.ApplicationDeadline != nil && time.Now().After(job.ApplicationDeadline.Add(24*time.Hour)) {
		return nil, domain.NewInvalidStateError("The application deadline has passed")
	}

	if applied, err := s.appRepo.Exists(ctx, jobID, jobSeekerID); err != nil {
		return nil, err
	} else if applied {
		return nil, domain.NewDuplicateError("You have already applied to this job")
	}

	now := time.Now()
	app := &domain.JobApplication{
		ID:              uuid.New(),
		JobID:           jobID,
		JobSeekerID:     jobSeekerID,
		CoverLetter:     s.sanitizer.Clean(req.CoverLetter),
		CVFileURL:       req.CVFileURL,
		ApplicationDate: now,
		Status:          domain.ApplicationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The unique (job, seeker) index backs the Exists check above, so two
	// concurrent applies cannot both get through.
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("job_id", jobID.String()).
		Msg("Application submitted")

	return s.appRepo.GetByID(ctx, app.ID)
}

func (s *applicationService) UpdateApplicationStatus(ctx context.Context, applicationID, employerID uuid.UUID, req *dto.ApplicationStatusRequest) (*domain.JobApplication, error) {
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"status": err.Error()})
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.NewNotFoundError("Application not found")
	}
	if app.EmployerID != employerID {
		return nil, domain.NewForbiddenError("You don't have permission to update this application")
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status, s.sanitizer.Clean(req.Notes)); err != nil {
		return nil, err
	}
	return s.appRepo.GetByID(ctx, applicationID)
}

func (s *applicationService) WithdrawApplication(ctx context.Context, applicationID, jobSeekerID uuid.UUID) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app == nil || app.JobSeekerID != jobSeekerID {
		return domain.NewNotFoundError("Application not found")
	}
	if app.Status == domain.ApplicationAccepted {
		return domain.NewInvalidStateError("Cannot withdraw an accepted application")
	}
	return s.appRepo.Delete(ctx, applicationID)
}

func (s *applicationService) HasApplied(ctx context.Context, jobID, jobSeekerID uuid.UUID) (bool, error) {
	return s.appRepo.Exists(ctx, jobID, jobSeekerID)
}

// GetApplication enforces per-role visibility: seekers see their own
// applications, employers the ones against their jobs, admins everything.
func (s *applicationService) GetApplication(ctx context.Context, applicationID, userID uuid.UUID, role domain.Role) (*domain.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.NewNotFoundError("Application not found")
	}

	switch role {
	case domain.RoleAdmin:
		return app, nil
	case domain.RoleEmployer:
		if app.EmployerID != userID {
			return nil, domain.NewForbiddenError("You don't have permission to view this application")
		}
	default:
		if app.JobSeekerID != userID {
			return nil, domain.NewNotFoundError("Application not found")
		}
	}
	return app, nil
}

func (s *applicationService) GetApplicationsBySeeker(ctx context.Context, jobSeekerID uuid.UUID, status *domain.ApplicationStatus, offset, limit int) ([]*domain.JobApplication, int64, error) {
	return s.appRepo.ListBySeeker(ctx, jobSeekerID, status, offset, limit)
}

func (s *applicationService) GetApplicationsByJob(ctx context.Context, jobID, employerID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error) {
	job, err := s.jobRepo.GetByIDForEmployer(ctx, jobID, employerID)
	if err != nil {
		return nil, 0, err
	}
	if job == nil {
		return nil, 0, domain.NewNotFoundError("Job not found")
	}
	return s.appRepo.ListByJob(ctx, jobID, offset, limit)
}

func (s *applicationService) GetApplicationsByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error) {
	return s.appRepo.ListByEmployer(ctx, employerID, offset, limit)
}
