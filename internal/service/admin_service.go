package service

import (
	"context"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DashboardCache is satisfied by the Redis-backed cache in the repository
// package.
type DashboardCache interface {
	Get(ctx context.Context) (*dto.AdminDashboard, error)
	Set(ctx context.Context, dashboard *dto.AdminDashboard) error
	Invalidate(ctx context.Context) error
}

type AdminService interface {
	Dashboard(ctx context.Context) (*dto.AdminDashboard, error)
	ApproveEmployer(ctx context.Context, employerID uuid.UUID) error
	RejectEmployer(ctx context.Context, employerID uuid.UUID) error
	PendingEmployers(ctx context.Context) ([]*domain.User, error)
	ApproveJob(ctx context.Context, jobID uuid.UUID) error
	DeactivateJob(ctx context.Context, jobID uuid.UUID) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	PendingJobs(ctx context.Context, offset, limit int) ([]*domain.Job, int64, error)
	ListUsers(ctx context.Context, role *domain.Role, offset, limit int) ([]*domain.User, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetUserEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	SetUserLocked(ctx context.Context, id uuid.UUID, locked bool) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	userRepo domain.UserRepository
	jobRepo  domain.JobRepository
	appRepo  domain.ApplicationRepository
	sessions domain.SessionStore
	cache    DashboardCache
}

func NewAdminService(
	userRepo domain.UserRepository,
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	sessions domain.SessionStore,
	cache DashboardCache,
) AdminService {
	return &adminService{
		userRepo: userRepo,
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		sessions: sessions,
		cache:    cache,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	if cached, err := s.cache.Get(ctx); err != nil {
		log.Warn().Err(err).Msg("Dashboard cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	userCounts, err := s.userRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	jobStats, err := s.jobRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	totalApps, err := s.appRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	appsByStatus, err := s.appRepo.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.PendingEmployers(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.AdminDashboard{
		TotalUsers:               userCounts.Total,
		TotalJobSeekers:          userCounts.JobSeekers,
		TotalEmployers:           userCounts.Employers,
		TotalJobs:                jobStats.Total,
		TotalApplications:        totalApps,
		PendingEmployerApprovals: int64(len(pending)),
		ActiveJobs:               jobStats.Active,
		InactiveJobs:             jobStats.Inactive,
		ApplicationsByStatus:     make(map[string]int64, len(appsByStatus)),
		JobsByType:               make(map[string]int64, len(jobStats.ByType)),
	}
	for status, count := range appsByStatus {
		dashboard.ApplicationsByStatus[string(status)] = count
	}
	for jobType, count := range jobStats.ByType {
		dashboard.JobsByType[string(jobType)] = count
	}

	if err := s.cache.Set(ctx, dashboard); err != nil {
		log.Warn().Err(err).Msg("Dashboard cache write failed")
	}
	return dashboard, nil
}

func (s *adminService) ApproveEmployer(ctx context.Context, employerID uuid.UUID) error {
	if err := s.requireEmployer(ctx, employerID); err != nil {
		return err
	}
	if err := s.userRepo.SetEmployerApproval(ctx, employerID, domain.ApprovalApproved, true); err != nil {
		return err
	}
	log.Info().Str("employer_id", employerID.String()).Msg("Employer approved")
	s.invalidateDashboard(ctx)
	return nil
}

func (s *adminService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Dashboard cache invalidation failed")
	}
}

func (s *adminService) RejectEmployer(ctx context.Context, employerID uuid.UUID) error {
	if err := s.requireEmployer(ctx, employerID); err != nil {
		return err
	}
	if err := s.userRepo.SetEmployerApproval(ctx, employerID, domain.ApprovalRejected, false); err != nil {
		return err
	}
	// A rejected employer cannot keep an open session.
	if err := s.sessions.DeleteByUserID(ctx, employerID); err != nil {
		log.Warn().Err(err).Str("employer_id", employerID.String()).Msg("Failed to revoke sessions")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *adminService) requireEmployer(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.Role != domain.RoleEmployer {
		return domain.NewNotFoundError("Employer not found")
	}
	return nil
}

func (s *adminService) PendingEmployers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.PendingEmployers(ctx)
}

func (s *adminService) ApproveJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.requireJob(ctx, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Approve(ctx, jobID); err != nil {
		return err
	}
	log.Info().Str("job_id", jobID.String()).Msg("Job approved")
	s.invalidateDashboard(ctx)
	return nil
}

func (s *adminService) DeactivateJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.requireJob(ctx, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Deactivate(ctx, jobID); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *adminService) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.requireJob(ctx, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *adminService) requireJob(ctx context.Context, id uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.NewNotFoundError("Job not found")
	}
	return nil
}

func (s *adminService) PendingJobs(ctx context.Context, offset, limit int) ([]*domain.Job, int64, error) {
	return s.jobRepo.ListByApproval(ctx, domain.ApprovalPending, offset, limit)
}

func (s *adminService) ListUsers(ctx context.Context, role *domain.Role, offset, limit int) ([]*domain.User, int64, error) {
	return s.userRepo.List(ctx, role, offset, limit)
}

func (s *adminService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return user, nil
}

func (s *adminService) SetUserEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetEnabled(ctx, id, enabled); err != nil {
		return err
	}
	if !enabled {
		return s.sessions.DeleteByUserID(ctx, id)
	}
	return nil
}

func (s *adminService) SetUserLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetLocked(ctx, id, locked); err != nil {
		return err
	}
	if locked {
		return s.sessions.DeleteByUserID(ctx, id)
	}
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return domain.NewForbiddenError("Admin accounts cannot be deleted")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Msg("User deleted")
	s.invalidateDashboard(ctx)
	return s.sessions.DeleteByUserID(ctx, id)
}
