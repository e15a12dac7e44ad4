package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobportal/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) domain.JobRepository {
	return &jobRepository{db: db}
}

// jobColumns joins the employer row for the denormalized response fields and
// counts applications inline.
const jobColumns = `j.id, j.employer_id, j.title, j.description, j.requirements, j.responsibilities,
        j.job_type, j.experience_level, j.location, j.salary_min, j.salary_max, j.salary_currency,
        j.is_remote, j.is_active, j.approval_status, j.application_deadline, j.vacancies,
        j.created_at, j.updated_at,
        u.company_name, TRIM(u.first_name || ' ' || u.last_name),
        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)`

const jobFrom = ` FROM jobs j JOIN users u ON u.id = j.employer_id`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO jobs (id, employer_id, title, description, requirements, responsibilities,
                          job_type, experience_level, location, salary_min, salary_max, salary_currency,
                          is_remote, is_active, approval_status, application_deadline, vacancies,
                          created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err = tx.ExecContext(ctx, query,
		job.ID, job.EmployerID, job.Title, job.Description, job.Requirements, job.Responsibilities,
		job.JobType, job.ExperienceLevel, job.Location, nullInt64(job.SalaryMin), nullInt64(job.SalaryMax),
		job.SalaryCurrency, job.IsRemote, job.IsActive, job.ApprovalStatus,
		nullTime(job.ApplicationDeadline), nullInt(job.Vacancies),
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert job")
		return err
	}

	if err := replaceStringList(ctx, tx, "job_skills", "skill", job.ID, job.RequiredSkills); err != nil {
		return err
	}
	if err := replaceStringList(ctx, tx, "job_benefits", "benefit", job.ID, job.Benefits); err != nil {
		return err
	}

	return tx.Commit()
}

// Update overwrites every mutable field. The WHERE clause carries the
// employer id, so a job owned by someone else updates zero rows and surfaces
// as sql.ErrNoRows.
func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE jobs
        SET title = $3, description = $4, requirements = $5, responsibilities = $6,
            job_type = $7, experience_level = $8, location = $9,
            salary_min = $10, salary_max = $11, salary_currency = $12,
            is_remote = $13, application_deadline = $14, vacancies = $15, updated_at = $16
        WHERE id = $1 AND employer_id = $2`

	result, err := tx.ExecContext(ctx, query,
		job.ID, job.EmployerID, job.Title, job.Description, job.Requirements, job.Responsibilities,
		job.JobType, job.ExperienceLevel, job.Location,
		nullInt64(job.SalaryMin), nullInt64(job.SalaryMax), job.SalaryCurrency,
		job.IsRemote, nullTime(job.ApplicationDeadline), nullInt(job.Vacancies), time.Now(),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to update job")
		return err
	}
	if err := checkRowsAffected(result, "update job"); err != nil {
		return err
	}

	// nil means "leave the stored list untouched"; an empty slice clears it.
	if job.RequiredSkills != nil {
		if err := replaceStringList(ctx, tx, "job_skills", "skill", job.ID, job.RequiredSkills); err != nil {
			return err
		}
	}
	if job.Benefits != nil {
		if err := replaceStringList(ctx, tx, "job_benefits", "benefit", job.ID, job.Benefits); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.getOne(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id)
}

func (r *jobRepository) GetByIDForEmployer(ctx context.Context, id, employerID uuid.UUID) (*domain.Job, error) {
	return r.getOne(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1 AND j.employer_id = $2`, id, employerID)
}

func (r *jobRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	job, err := scanJob(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadLists(ctx, []*domain.Job{job}); err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM job_applications WHERE job_id = $1`,
		`DELETE FROM job_skills WHERE job_id = $1`,
		`DELETE FROM job_benefits WHERE job_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(result, "delete job"); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *jobRepository) SetActiveForEmployer(ctx context.Context, id, employerID uuid.UUID, active bool) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET is_active = $3, updated_at = $4 WHERE id = $1 AND employer_id = $2`,
		id, employerID, active, time.Now())
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	return rowsAffected > 0, err
}

// Approve clears a job for public listing. Activation is set here as a
// convenience; the employer may toggle is_active freely afterwards without
// re-approval.
func (r *jobRepository) Approve(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET is_active = TRUE, approval_status = $2, updated_at = $3 WHERE id = $1`,
		id, domain.ApprovalApproved, time.Now())
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "approve job")
}

func (r *jobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, time.Now())
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "deactivate job")
}

func (r *jobRepository) ListActive(ctx context.Context, offset, limit int) ([]*domain.Job, int64, error) {
	where := ` WHERE j.is_active = TRUE AND j.approval_status = $1`
	return r.list(ctx, where, []any{domain.ApprovalApproved}, offset, limit)
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.Job, int64, error) {
	return r.list(ctx, ` WHERE j.employer_id = $1`, []any{employerID}, offset, limit)
}

func (r *jobRepository) ListByApproval(ctx context.Context, status domain.ApprovalStatus, offset, limit int) ([]*domain.Job, int64, error) {
	return r.list(ctx, ` WHERE j.approval_status = $1`, []any{status}, offset, limit)
}

func (r *jobRepository) Search(ctx context.Context, filter domain.JobSearchFilter, offset, limit int) ([]*domain.Job, int64, error) {
	where, args := buildSearchWhere(filter)
	return r.list(ctx, where, args, offset, limit)
}

// buildSearchWhere assembles the conjunctive filter clause. Only active and
// approved jobs are searchable; every other criterion is optional.
func buildSearchWhere(filter domain.JobSearchFilter) (string, []any) {
	clauses := []string{"j.is_active = TRUE", "j.approval_status = 'APPROVED'"}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Title != "" {
		add("j.title ILIKE $%d", "%"+filter.Title+"%")
	}
	if filter.Location != "" {
		add("j.location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.JobType != nil {
		add("j.job_type = $%d", *filter.JobType)
	}
	if filter.ExperienceLevel != nil {
		add("j.experience_level = $%d", *filter.ExperienceLevel)
	}
	// Salary ranges match when they overlap.
	if filter.MinSalary != nil {
		add("j.salary_max >= $%d", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		add("j.salary_min <= $%d", *filter.MaxSalary)
	}
	if filter.IsRemote != nil {
		add("j.is_remote = $%d", *filter.IsRemote)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *jobRepository) list(ctx context.Context, where string, args []any, offset, limit int) ([]*domain.Job, int64, error) {
	offset, limit = clampPage(offset, limit)

	var total int64
	countQuery := `SELECT COUNT(*)` + jobFrom + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s%s%s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, jobFrom, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadLists(ctx, jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) Stats(ctx context.Context) (domain.JobStats, error) {
	stats := domain.JobStats{ByType: make(map[domain.JobType]int64)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM jobs`).
		Scan(&stats.Total, &stats.Active)
	if err != nil {
		return stats, err
	}
	stats.Inactive = stats.Total - stats.Active

	rows, err := r.db.QueryContext(ctx, `SELECT job_type, COUNT(*) FROM jobs GROUP BY job_type`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for _, t := range domain.JobTypes {
		stats.ByType[t] = 0
	}
	for rows.Next() {
		var jobType domain.JobType
		var count int64
		if err := rows.Scan(&jobType, &count); err != nil {
			return stats, err
		}
		stats.ByType[jobType] = count
	}
	return stats, rows.Err()
}

// loadLists fetches skills and benefits for a batch of jobs in two queries.
func (r *jobRepository) loadLists(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Job, len(jobs))
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		job.RequiredSkills = []string{}
		job.Benefits = []string{}
		byID[job.ID] = job
		ids = append(ids, job.ID.String())
	}

	load := func(table, column string, assign func(j *domain.Job, v string)) error {
		query := fmt.Sprintf(
			`SELECT job_id, %s FROM %s WHERE job_id = ANY($1::uuid[]) ORDER BY job_id, position`,
			column, table)
		rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var jobID uuid.UUID
			var value string
			if err := rows.Scan(&jobID, &value); err != nil {
				return err
			}
			if job, ok := byID[jobID]; ok {
				assign(job, value)
			}
		}
		return rows.Err()
	}

	if err := load("job_skills", "skill", func(j *domain.Job, v string) {
		j.RequiredSkills = append(j.RequiredSkills, v)
	}); err != nil {
		return err
	}
	return load("job_benefits", "benefit", func(j *domain.Job, v string) {
		j.Benefits = append(j.Benefits, v)
	})
}

func scanJob(scan func(dest ...any) error) (*domain.Job, error) {
	job := &domain.Job{}
	var (
		salaryMin sql.NullInt64
		salaryMax sql.NullInt64
		deadline  sql.NullTime
		vacancies sql.NullInt64
	)

	err := scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
		&job.JobType, &job.ExperienceLevel, &job.Location, &salaryMin, &salaryMax, &job.SalaryCurrency,
		&job.IsRemote, &job.IsActive, &job.ApprovalStatus, &deadline, &vacancies,
		&job.CreatedAt, &job.UpdatedAt,
		&job.CompanyName, &job.EmployerName, &job.ApplicationCount,
	)
	if err != nil {
		return nil, err
	}

	if salaryMin.Valid {
		job.SalaryMin = &salaryMin.Int64
	}
	if salaryMax.Valid {
		job.SalaryMax = &salaryMax.Int64
	}
	if deadline.Valid {
		job.ApplicationDeadline = &deadline.Time
	}
	if vacancies.Valid {
		v := int(vacancies.Int64)
		job.Vacancies = &v
	}
	return job, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// replaceStringList rewrites an ordered child list (skills, benefits) for one
// owner row.
func replaceStringList(ctx context.Context, tx execer, table, column string, ownerID uuid.UUID, values []string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE job_id = $1`, table), ownerID); err != nil {
		return err
	}
	for i, value := range values {
		query := fmt.Sprintf(`INSERT INTO %s (job_id, position, %s) VALUES ($1, $2, $3)`, table, column)
		if _, err := tx.ExecContext(ctx, query, ownerID, i, value); err != nil {
			return err
		}
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
