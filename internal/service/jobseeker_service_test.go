package service

import (
	"context"
	"testing"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeekerFixture(t *testing.T) (JobSeekerService, *fakeUserRepo, *fakeCVRepo, uuid.UUID) {
	t.Helper()
	users := newFakeUserRepo()
	cvs := newFakeCVRepo()
	store, err := storage.NewLocalStore(t.TempDir(), 10<<20)
	require.NoError(t, err)

	seekerID := uuid.New()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID:        seekerID,
		Username:  "john",
		Email:     "john@example.com",
		FirstName: "John",
		Role:      domain.RoleJobSeeker,
		IsEnabled: true,
		Seeker:    &domain.JobSeekerProfile{},
	}))

	return NewJobSeekerService(users, cvs, store), users, cvs, seekerID
}

func strPtr(s string) *string { return &s }

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	user, err := svc.UpdateProfile(context.Background(), seekerID, &dto.ProfileUpdateRequest{
		City:            strPtr("Berlin"),
		ProfileHeadline: strPtr("Backend developer"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Berlin", user.Seeker.City)
	assert.Equal(t, "Backend developer", user.Seeker.ProfileHeadline)
	// Untouched fields keep their values.
	assert.Equal(t, "John", user.FirstName)
}

func TestUpdateProfileBadDate(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	_, err := svc.UpdateProfile(context.Background(), seekerID, &dto.ProfileUpdateRequest{
		DateOfBirth: strPtr("15-06-1990"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestProfileForNonSeeker(t *testing.T) {
	svc, users, _, _ := newSeekerFixture(t)

	employerID := uuid.New()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID:       employerID,
		Username: "acme",
		Email:    "acme@example.com",
		Role:     domain.RoleEmployer,
	}))

	_, err := svc.GetProfile(context.Background(), employerID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetCVBeforeCreation(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	_, err := svc.GetCV(context.Background(), seekerID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateCVCreatesOnFirstWrite(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	skills := []string{"Go", "SQL"}
	cv, err := svc.UpdateCV(context.Background(), seekerID, &dto.CVUpdateRequest{
		ProfessionalTitle: strPtr("Backend Engineer"),
		Skills:            &skills,
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", cv.ProfessionalTitle)
	assert.Equal(t, []string{"Go", "SQL"}, cv.Skills)

	// Second update leaves omitted fields alone.
	cv, err = svc.UpdateCV(context.Background(), seekerID, &dto.CVUpdateRequest{
		Bio: strPtr("Ten years of services"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", cv.ProfessionalTitle)
	assert.Equal(t, "Ten years of services", cv.Bio)
}

func TestAddEducationCreatesCV(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	cv, err := svc.AddEducation(context.Background(), seekerID, &dto.EducationRequest{
		Institution: "TU Berlin",
		Degree:      "BSc",
		StartDate:   "2015-10-01",
		EndDate:     "2018-09-30",
	})
	require.NoError(t, err)
	require.Len(t, cv.Educations, 1)
	assert.Equal(t, "TU Berlin", cv.Educations[0].Institution)
	require.NotNil(t, cv.Educations[0].StartDate)
}

func TestAddWorkExperienceAndCertification(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	cv, err := svc.AddWorkExperience(context.Background(), seekerID, &dto.WorkExperienceRequest{
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "2019-01-01",
		IsCurrent: true,
	})
	require.NoError(t, err)
	require.Len(t, cv.WorkExperiences, 1)
	assert.True(t, cv.WorkExperiences[0].IsCurrent)

	cv, err = svc.AddCertification(context.Background(), seekerID, &dto.CertificationRequest{
		Name:      "CKA",
		IssueDate: "2022-03-01",
	})
	require.NoError(t, err)
	require.Len(t, cv.Certifications, 1)
	assert.Equal(t, "CKA", cv.Certifications[0].Name)
}

func TestAddEducationBadDate(t *testing.T) {
	svc, _, _, seekerID := newSeekerFixture(t)

	_, err := svc.AddEducation(context.Background(), seekerID, &dto.EducationRequest{
		Institution: "TU Berlin",
		Degree:      "BSc",
		StartDate:   "October 2015",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
