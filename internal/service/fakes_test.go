package service

import (
	"context"
	"sync"
	"time"

	"jobportal/internal/config"
	"jobportal/internal/domain"
	"jobportal/internal/domain/dto"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the contracts the SQL
// implementations honor, including (nil, nil) for absent records and
// duplicate detection on unique columns.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domain.NewDuplicateError("email or username already registered")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SetEmployerApproval(_ context.Context, id uuid.UUID, status domain.ApprovalStatus, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Role != domain.RoleEmployer || u.Employer == nil {
		return nil
	}
	u.Employer.ApprovalStatus = status
	u.Employer.IsApproved = approved
	return nil
}

func (r *fakeUserRepo) SetEnabled(_ context.Context, id uuid.UUID, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsEnabled = enabled
	}
	return nil
}

func (r *fakeUserRepo) SetLocked(_ context.Context, id uuid.UUID, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsLocked = locked
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role *domain.Role, _, _ int) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if role == nil || u.Role == *role {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) PendingEmployers(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleEmployer && u.Employer != nil && u.Employer.ApprovalStatus == domain.ApprovalPending {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Counts(_ context.Context) (domain.UserCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := domain.UserCounts{}
	for _, u := range r.users {
		counts.Total++
		switch u.Role {
		case domain.RoleJobSeeker:
			counts.JobSeekers++
		case domain.RoleEmployer:
			counts.Employers++
		}
	}
	return counts, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok || existing.EmployerID != job.EmployerID {
		return nil
	}
	updated := *job
	updated.IsActive = existing.IsActive
	updated.ApprovalStatus = existing.ApprovalStatus
	r.jobs[job.ID] = &updated
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeJobRepo) GetByIDForEmployer(_ context.Context, id, employerID uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok && j.EmployerID == employerID {
		copied := *j
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) SetActiveForEmployer(_ context.Context, id, employerID uuid.UUID, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.EmployerID != employerID {
		return false, nil
	}
	j.IsActive = active
	return true, nil
}

func (r *fakeJobRepo) Approve(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		j.IsActive = true
		j.ApprovalStatus = domain.ApprovalApproved
	}
	return nil
}

func (r *fakeJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		j.IsActive = false
	}
	return nil
}

func (r *fakeJobRepo) ListActive(_ context.Context, _, _ int) ([]*domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.PubliclyVisible() {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID, _, _ int) ([]*domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.EmployerID == employerID {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) ListByApproval(_ context.Context, status domain.ApprovalStatus, _, _ int) ([]*domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.ApprovalStatus == status {
			copied := *j
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) Search(ctx context.Context, _ domain.JobSearchFilter, offset, limit int) ([]*domain.Job, int64, error) {
	return r.ListActive(ctx, offset, limit)
}

func (r *fakeJobRepo) Stats(_ context.Context) (domain.JobStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := domain.JobStats{ByType: make(map[domain.JobType]int64)}
	for _, j := range r.jobs {
		stats.Total++
		if j.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByType[j.JobType]++
	}
	return stats, nil
}

type appKey struct {
	jobID    uuid.UUID
	seekerID uuid.UUID
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	apps  map[uuid.UUID]*domain.JobApplication
	byKey map[appKey]uuid.UUID
	jobs  *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:  make(map[uuid.UUID]*domain.JobApplication),
		byKey: make(map[appKey]uuid.UUID),
		jobs:  jobs,
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := appKey{app.JobID, app.JobSeekerID}
	if _, exists := r.byKey[key]; exists {
		return domain.NewDuplicateError("You have already applied to this job")
	}
	copied := *app
	if r.jobs != nil {
		if j, ok := r.jobs.jobs[app.JobID]; ok {
			copied.EmployerID = j.EmployerID
			copied.JobTitle = j.Title
		}
	}
	r.apps[app.ID] = &copied
	r.byKey[key] = app.ID
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeApplicationRepo) Exists(_ context.Context, jobID, jobSeekerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byKey[appKey{jobID, jobSeekerID}]
	return ok, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ApplicationStatus, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok {
		a.Status = status
		a.Notes = notes
		a.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok {
		delete(r.byKey, appKey{a.JobID, a.JobSeekerID})
		delete(r.apps, id)
	}
	return nil
}

func (r *fakeApplicationRepo) ListBySeeker(_ context.Context, jobSeekerID uuid.UUID, status *domain.ApplicationStatus, _, _ int) ([]*domain.JobApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.JobApplication
	for _, a := range r.apps {
		if a.JobSeekerID == jobSeekerID && (status == nil || a.Status == *status) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]*domain.JobApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.JobApplication
	for _, a := range r.apps {
		if a.JobID == jobID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) ListByEmployer(_ context.Context, employerID uuid.UUID, _, _ int) ([]*domain.JobApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.JobApplication
	for _, a := range r.apps {
		if a.EmployerID == employerID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApplicationRepo) CountsByStatus(_ context.Context) (map[domain.ApplicationStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.ApplicationStatus]int64)
	for _, status := range domain.ApplicationStatuses {
		counts[status] = 0
	}
	for _, a := range r.apps {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *fakeApplicationRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.apps)), nil
}

type fakeCVRepo struct {
	mu  sync.Mutex
	cvs map[uuid.UUID]*domain.CV
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: make(map[uuid.UUID]*domain.CV)}
}

func (r *fakeCVRepo) GetBySeeker(_ context.Context, jobSeekerID uuid.UUID) (*domain.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cv, ok := r.cvs[jobSeekerID]; ok {
		copied := *cv
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeCVRepo) Upsert(_ context.Context, cv *domain.CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cv
	if existing, ok := r.cvs[cv.JobSeekerID]; ok {
		cv.ID = existing.ID
		copied.ID = existing.ID
		// nil lists mean "leave the stored list untouched".
		if copied.Skills == nil {
			copied.Skills = existing.Skills
		}
		if copied.Languages == nil {
			copied.Languages = existing.Languages
		}
		copied.Educations = existing.Educations
		copied.WorkExperiences = existing.WorkExperiences
		copied.Certifications = existing.Certifications
	}
	r.cvs[cv.JobSeekerID] = &copied
	return nil
}

func (r *fakeCVRepo) SetFileURL(_ context.Context, jobSeekerID uuid.UUID, fileURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cv, ok := r.cvs[jobSeekerID]; ok {
		cv.FileURL = fileURL
	}
	return nil
}

func (r *fakeCVRepo) AddEducation(_ context.Context, cvID uuid.UUID, edu *domain.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cv := range r.cvs {
		if cv.ID == cvID {
			cv.Educations = append(cv.Educations, *edu)
		}
	}
	return nil
}

func (r *fakeCVRepo) AddWorkExperience(_ context.Context, cvID uuid.UUID, exp *domain.WorkExperience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cv := range r.cvs {
		if cv.ID == cvID {
			cv.WorkExperiences = append(cv.WorkExperiences, *exp)
		}
	}
	return nil
}

func (r *fakeCVRepo) AddCertification(_ context.Context, cvID uuid.UUID, cert *domain.Certification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cv := range r.cvs {
		if cv.ID == cvID {
			cv.Certifications = append(cv.Certifications, *cert)
		}
	}
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *fakeSessionStore) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		copied := *sess
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessionStore) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *fakeSessionStore) countForUser(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

type fakeDashboardCache struct {
	mu        sync.Mutex
	dashboard *dto.AdminDashboard
	hits      int
}

func (c *fakeDashboardCache) Get(_ context.Context) (*dto.AdminDashboard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dashboard != nil {
		c.hits++
	}
	return c.dashboard, nil
}

func (c *fakeDashboardCache) Set(_ context.Context, dashboard *dto.AdminDashboard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = dashboard
	return nil
}

func (c *fakeDashboardCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = nil
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	}
}
