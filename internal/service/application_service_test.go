package service

import (
	"context"
	"testing"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	svc        ApplicationService
	apps       *fakeApplicationRepo
	jobs       *fakeJobRepo
	employerID uuid.UUID
	seekerID   uuid.UUID
	jobID      uuid.UUID
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)

	employerID := uuid.New()
	jobID := uuid.New()
	require.NoError(t, jobs.Create(context.Background(), &domain.Job{
		ID:             jobID,
		EmployerID:     employerID,
		Title:          "Backend Engineer",
		JobType:        domain.JobTypeFullTime,
		IsActive:       true,
		ApprovalStatus: domain.ApprovalApproved,
	}))

	return &applicationFixture{
		svc:        NewApplicationService(apps, jobs),
		apps:       apps,
		jobs:       jobs,
		employerID: employerID,
		seekerID:   uuid.New(),
		jobID:      jobID,
	}
}

func (f *applicationFixture) apply(t *testing.T) *domain.JobApplication {
	t.Helper()
	app, err := f.svc.ApplyToJob(context.Background(), f.seekerID, &dto.ApplicationRequest{
		JobID:       f.jobID.String(),
		CoverLetter: "I would like to apply",
	})
	require.NoError(t, err)
	return app
}

func TestApplyToJob(t *testing.T) {
	f := newApplicationFixture(t)

	app := f.apply(t)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.False(t, app.ApplicationDate.IsZero())

	applied, err := f.svc.HasApplied(context.Background(), f.jobID, f.seekerID)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestApplyTwiceFails(t *testing.T) {
	f := newApplicationFixture(t)
	f.apply(t)

	_, err := f.svc.ApplyToJob(context.Background(), f.seekerID, &dto.ApplicationRequest{
		JobID: f.jobID.String(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsDuplicate(err))
}

func TestApplyToInactiveJob(t *testing.T) {
	f := newApplicationFixture(t)
	require.NoError(t, f.jobs.Deactivate(context.Background(), f.jobID))

	_, err := f.svc.ApplyToJob(context.Background(), f.seekerID, &dto.ApplicationRequest{
		JobID: f.jobID.String(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestApplyToUnapprovedJob(t *testing.T) {
	f := newApplicationFixture(t)
	f.jobs.mu.Lock()
	f.jobs.jobs[f.jobID].ApprovalStatus = domain.ApprovalPending
	f.jobs.mu.Unlock()

	_, err := f.svc.ApplyToJob(context.Background(), f.seekerID, &dto.ApplicationRequest{
		JobID: f.jobID.String(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestApplyToMissingJob(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.ApplyToJob(context.Background(), f.seekerID, &dto.ApplicationRequest{
		JobID: uuid.New().String(),
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateApplicationStatus(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	updated, err := f.svc.UpdateApplicationStatus(context.Background(), app.ID, f.employerID, &dto.ApplicationStatusRequest{
		Status: "SHORTLISTED",
		Notes:  "Strong profile",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, updated.Status)
	assert.Equal(t, "Strong profile", updated.Notes)
}

func TestUpdateApplicationStatusForeignEmployer(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	_, err := f.svc.UpdateApplicationStatus(context.Background(), app.ID, uuid.New(), &dto.ApplicationStatusRequest{
		Status: "REVIEWED",
	})
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestUpdateApplicationStatusUnknownStatus(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	_, err := f.svc.UpdateApplicationStatus(context.Background(), app.ID, f.employerID, &dto.ApplicationStatusRequest{
		Status: "MAYBE",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestWithdrawApplication(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	require.NoError(t, f.svc.WithdrawApplication(context.Background(), app.ID, f.seekerID))

	applied, err := f.svc.HasApplied(context.Background(), f.jobID, f.seekerID)
	require.NoError(t, err)
	assert.False(t, applied)

	// Withdraw frees the slot for a new application.
	f.apply(t)
}

func TestWithdrawAcceptedApplication(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	_, err := f.svc.UpdateApplicationStatus(context.Background(), app.ID, f.employerID, &dto.ApplicationStatusRequest{
		Status: "ACCEPTED",
	})
	require.NoError(t, err)

	err = f.svc.WithdrawApplication(context.Background(), app.ID, f.seekerID)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidState(err))
}

func TestWithdrawForeignApplication(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	err := f.svc.WithdrawApplication(context.Background(), app.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetApplicationVisibility(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)
	ctx := context.Background()

	_, err := f.svc.GetApplication(ctx, app.ID, f.seekerID, domain.RoleJobSeeker)
	require.NoError(t, err)

	_, err = f.svc.GetApplication(ctx, app.ID, f.employerID, domain.RoleEmployer)
	require.NoError(t, err)

	_, err = f.svc.GetApplication(ctx, app.ID, uuid.New(), domain.RoleAdmin)
	require.NoError(t, err)

	_, err = f.svc.GetApplication(ctx, app.ID, uuid.New(), domain.RoleEmployer)
	assert.True(t, domain.IsForbidden(err))

	_, err = f.svc.GetApplication(ctx, app.ID, uuid.New(), domain.RoleJobSeeker)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetApplicationsByJobRequiresOwnership(t *testing.T) {
	f := newApplicationFixture(t)
	f.apply(t)

	apps, total, err := f.svc.GetApplicationsByJob(context.Background(), f.jobID, f.employerID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, apps, 1)

	_, _, err = f.svc.GetApplicationsByJob(context.Background(), f.jobID, uuid.New(), 0, 10)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetApplicationsBySeekerWithStatus(t *testing.T) {
	f := newApplicationFixture(t)
	app := f.apply(t)

	_, err := f.svc.UpdateApplicationStatus(context.Background(), app.ID, f.employerID, &dto.ApplicationStatusRequest{
		Status: "REVIEWED",
	})
	require.NoError(t, err)

	reviewed := domain.ApplicationReviewed
	apps, total, err := f.svc.GetApplicationsBySeeker(context.Background(), f.seekerID, &reviewed, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, apps, 1)

	pending := domain.ApplicationPending
	apps, total, err = f.svc.GetApplicationsBySeeker(context.Background(), f.seekerID, &pending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, apps)
}
