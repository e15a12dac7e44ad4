package service

import (
	"context"
	"mime/multipart"
	"time"

	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"
	"jobportal/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type JobSeekerService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.ProfileUpdateRequest) (*domain.User, error)
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
	GetCV(ctx context.Context, userID uuid.UUID) (*domain.CV, error)
	UpdateCV(ctx context.Context, userID uuid.UUID, req *dto.CVUpdateRequest) (*domain.CV, error)
	UploadCVFile(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
	AddEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*domain.CV, error)
	AddWorkExperience(ctx context.Context, userID uuid.UUID, req *dto.WorkExperienceRequest) (*domain.CV, error)
	AddCertification(ctx context.Context, userID uuid.UUID, req *dto.CertificationRequest) (*domain.CV, error)
}

type jobSeekerService struct {
	userRepo  domain.UserRepository
	cvRepo    domain.CVRepository
	store     *storage.LocalStore
	sanitizer *domain.Sanitizer
}

func NewJobSeekerService(userRepo domain.UserRepository, cvRepo domain.CVRepository, store *storage.LocalStore) JobSeekerService {
	return &jobSeekerService{
		userRepo:  userRepo,
		cvRepo:    cvRepo,
		store:     store,
		sanitizer: domain.NewSanitizer(),
	}
}

func (s *jobSeekerService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.requireSeeker(ctx, userID)
}

func (s *jobSeekerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.ProfileUpdateRequest) (*domain.User, error) {
	user, err := s.requireSeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Seeker == nil {
		user.Seeker = &domain.JobSeekerProfile{}
	}

	if req.FirstName != nil {
		user.FirstName = s.sanitizer.Clean(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = s.sanitizer.Clean(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, domain.NewValidationError(map[string]string{"dateOfBirth": "must be a date in YYYY-MM-DD format"})
		}
		user.Seeker.DateOfBirth = &dob
	}
	if req.Address != nil {
		user.Seeker.Address = s.sanitizer.Clean(*req.Address)
	}
	if req.City != nil {
		user.Seeker.City = s.sanitizer.Clean(*req.City)
	}
	if req.Country != nil {
		user.Seeker.Country = s.sanitizer.Clean(*req.Country)
	}
	if req.PostalCode != nil {
		user.Seeker.PostalCode = *req.PostalCode
	}
	if req.ProfileSummary != nil {
		user.Seeker.ProfileSummary = s.sanitizer.Clean(*req.ProfileSummary)
	}
	if req.ProfileHeadline != nil {
		user.Seeker.ProfileHeadline = s.sanitizer.Clean(*req.ProfileHeadline)
	}
	if req.YearsOfExperience != nil {
		user.Seeker.YearsOfExperience = req.YearsOfExperience
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *jobSeekerService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	user, err := s.requireSeeker(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.store.SavePicture(file)
	if err != nil {
		return "", err
	}

	if user.Seeker == nil {
		user.Seeker = &domain.JobSeekerProfile{}
	}
	old := user.Seeker.ProfilePictureURL
	user.Seeker.ProfilePictureURL = url
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	if old != "" {
		if err := s.store.Remove(old); err != nil {
			log.Warn().Err(err).Str("path", old).Msg("Failed to remove old profile picture")
		}
	}
	return url, nil
}

func (s *jobSeekerService) GetCV(ctx context.Context, userID uuid.UUID) (*domain.CV, error) {
	if _, err := s.requireSeeker(ctx, userID); err != nil {
		return nil, err
	}
	cv, err := s.cvRepo.GetBySeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, domain.NewNotFoundError("CV not found")
	}
	return cv, nil
}

// UpdateCV creates the CV on first write.
func (s *jobSeekerService) UpdateCV(ctx context.Context, userID uuid.UUID, req *dto.CVUpdateRequest) (*domain.CV, error) {
	if _, err := s.requireSeeker(ctx, userID); err != nil {
		return nil, err
	}

	cv, err := s.cvRepo.GetBySeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		cv = &domain.CV{ID: uuid.New(), JobSeekerID: userID}
	}

	if req.ProfessionalTitle != nil {
		cv.ProfessionalTitle = s.sanitizer.Clean(*req.ProfessionalTitle)
	}
	if req.Bio != nil {
		cv.Bio = s.sanitizer.Clean(*req.Bio)
	}
	if req.Skills != nil {
		cv.Skills = s.sanitizer.CleanAll(*req.Skills)
	} else {
		cv.Skills = nil
	}
	if req.Languages != nil {
		cv.Languages = s.sanitizer.CleanAll(*req.Languages)
	} else {
		cv.Languages = nil
	}
	if req.LinkedinURL != nil {
		cv.LinkedinURL = *req.LinkedinURL
	}
	if req.GithubURL != nil {
		cv.GithubURL = *req.GithubURL
	}
	if req.PortfolioURL != nil {
		cv.PortfolioURL = *req.PortfolioURL
	}
	if req.TemplateName != nil {
		cv.TemplateName = *req.TemplateName
	}
	cv.UpdatedAt = time.Now()

	if err := s.cvRepo.Upsert(ctx, cv); err != nil {
		return nil, err
	}
	return s.cvRepo.GetBySeeker(ctx, userID)
}

func (s *jobSeekerService) UploadCVFile(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	cv, err := s.ensureCV(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.store.SaveCV(file)
	if err != nil {
		return "", err
	}

	if err := s.cvRepo.SetFileURL(ctx, userID, url); err != nil {
		return "", err
	}
	if cv.FileURL != "" {
		if err := s.store.Remove(cv.FileURL); err != nil {
			log.Warn().Err(err).Str("path", cv.FileURL).Msg("Failed to remove old CV file")
		}
	}
	return url, nil
}

func (s *jobSeekerService) AddEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*domain.CV, error) {
	cv, err := s.ensureCV(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	edu := &domain.Education{
		ID:           uuid.New(),
		CVID:         cv.ID,
		Institution:  s.sanitizer.Clean(req.Institution),
		Degree:       s.sanitizer.Clean(req.Degree),
		FieldOfStudy: s.sanitizer.Clean(req.FieldOfStudy),
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    req.IsCurrent,
		Description:  s.sanitizer.Clean(req.Description),
	}
	if err := s.cvRepo.AddEducation(ctx, cv.ID, edu); err != nil {
		return nil, err
	}
	return s.cvRepo.GetBySeeker(ctx, userID)
}

func (s *jobSeekerService) AddWorkExperience(ctx context.Context, userID uuid.UUID, req *dto.WorkExperienceRequest) (*domain.CV, error) {
	cv, err := s.ensureCV(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}

	exp := &domain.WorkExperience{
		ID:          uuid.New(),
		CVID:        cv.ID,
		Company:     s.sanitizer.Clean(req.Company),
		Position:    s.sanitizer.Clean(req.Position),
		StartDate:   start,
		EndDate:     end,
		IsCurrent:   req.IsCurrent,
		Description: s.sanitizer.Clean(req.Description),
	}
	if err := s.cvRepo.AddWorkExperience(ctx, cv.ID, exp); err != nil {
		return nil, err
	}
	return s.cvRepo.GetBySeeker(ctx, userID)
}

func (s *jobSeekerService) AddCertification(ctx context.Context, userID uuid.UUID, req *dto.CertificationRequest) (*domain.CV, error) {
	cv, err := s.ensureCV(ctx, userID)
	if err != nil {
		return nil, err
	}

	issued, err := parseOptionalDate(req.IssueDate, "issueDate")
	if err != nil {
		return nil, err
	}
	expires, err := parseOptionalDate(req.ExpirationDate, "expirationDate")
	if err != nil {
		return nil, err
	}

	cert := &domain.Certification{
		ID:                  uuid.New(),
		CVID:                cv.ID,
		Name:                s.sanitizer.Clean(req.Name),
		IssuingOrganization: s.sanitizer.Clean(req.IssuingOrganization),
		IssueDate:           issued,
		ExpirationDate:      expires,
		CredentialID:        req.CredentialID,
		CredentialURL:       req.CredentialURL,
	}
	if err := s.cvRepo.AddCertification(ctx, cv.ID, cert); err != nil {
		return nil, err
	}
	return s.cvRepo.GetBySeeker(ctx, userID)
}

func (s *jobSeekerService) requireSeeker(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != domain.RoleJobSeeker {
		return nil, domain.NewNotFoundError("Job seeker not found")
	}
	return user, nil
}

func (s *jobSeekerService) ensureCV(ctx context.Context, userID uuid.UUID) (*domain.CV, error) {
	if _, err := s.requireSeeker(ctx, userID); err != nil {
		return nil, err
	}
	cv, err := s.cvRepo.GetBySeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cv != nil {
		return cv, nil
	}
	cv = &domain.CV{ID: uuid.New(), JobSeekerID: userID, UpdatedAt: time.Now()}
	if err := s.cvRepo.Upsert(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{field: "must be a date in YYYY-MM-DD format"})
	}
	return &t, nil
}
