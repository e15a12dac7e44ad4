package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobportal/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) domain.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.cv_file_url,
        a.application_date, a.status, a.notes, a.created_at, a.updated_at,
        j.title, j.employer_id, e.company_name,
        TRIM(s.first_name || ' ' || s.last_name), s.email`

const applicationFrom = `
        FROM job_applications a
        JOIN jobs j ON j.id = a.job_id
        JOIN users e ON e.id = j.employer_id
        JOIN users s ON s.id = a.job_seeker_id`

func (r *applicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
        INSERT INTO job_applications (id, job_id, job_seeker_id, cover_letter, cv_file_url,
                                      application_date, status, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.JobID, app.JobSeekerID, app.CoverLetter, app.CVFileURL,
		app.ApplicationDate, app.Status, app.Notes, app.CreatedAt, app.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.NewDuplicateError("You have already applied to this job")
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to insert application")
	}
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1`, id)
	app, err := scanApplication(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return app, err
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, jobSeekerID uuid.UUID) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE job_id = $1 AND job_seeker_id = $2)`,
		jobID, jobSeekerID).Scan(&found)
	return found, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, notes string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_applications SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		id, status, notes, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to update application status")
		return err
	}
	return checkRowsAffected(result, "update application status")
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "delete application")
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, jobSeekerID uuid.UUID, status *domain.ApplicationStatus, offset, limit int) ([]*domain.JobApplication, int64, error) {
	where := ` WHERE a.job_seeker_id = $1`
	args := []any{jobSeekerID}
	if status != nil {
		where += ` AND a.status = $2`
		args = append(args, *status)
	}
	return r.list(ctx, where, args, offset, limit)
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error) {
	return r.list(ctx, ` WHERE a.job_id = $1`, []any{jobID}, offset, limit)
}

func (r *applicationRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID, offset, limit int) ([]*domain.JobApplication, int64, error) {
	return r.list(ctx, ` WHERE j.employer_id = $1`, []any{employerID}, offset, limit)
}

func (r *applicationRepository) list(ctx context.Context, where string, args []any, offset, limit int) ([]*domain.JobApplication, int64, error) {
	offset, limit = clampPage(offset, limit)

	var total int64
	countQuery := `SELECT COUNT(*)` + applicationFrom + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s%s%s ORDER BY a.application_date DESC LIMIT $%d OFFSET $%d`,
		applicationColumns, applicationFrom, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*domain.JobApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, total, rows.Err()
}

func (r *applicationRepository) CountsByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	counts := make(map[domain.ApplicationStatus]int64, len(domain.ApplicationStatuses))
	for _, s := range domain.ApplicationStatuses {
		counts[s] = 0
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM job_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&total)
	return total, err
}

func scanApplication(scan func(dest ...any) error) (*domain.JobApplication, error) {
	app := &domain.JobApplication{}
	err := scan(
		&app.ID, &app.JobID, &app.JobSeekerID, &app.CoverLetter, &app.CVFileURL,
		&app.ApplicationDate, &app.Status, &app.Notes, &app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.EmployerID, &app.CompanyName,
		&app.ApplicantName, &app.ApplicantEmail,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}
