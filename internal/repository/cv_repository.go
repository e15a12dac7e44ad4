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

type cvRepository struct {
	db *sql.DB
}

func NewCVRepository(db *sql.DB) domain.CVRepository {
	return &cvRepository{db: db}
}

func (r *cvRepository) GetBySeeker(ctx context.Context, jobSeekerID uuid.UUID) (*domain.CV, error) {
	cv := &domain.CV{}
	query := `
        SELECT id, job_seeker_id, professional_title, bio, linkedin_url, github_url,
               portfolio_url, file_url, template_name, updated_at
        FROM cvs WHERE job_seeker_id = $1`

	err := r.db.QueryRowContext(ctx, query, jobSeekerID).Scan(
		&cv.ID, &cv.JobSeekerID, &cv.ProfessionalTitle, &cv.Bio, &cv.LinkedinURL,
		&cv.GithubURL, &cv.PortfolioURL, &cv.FileURL, &cv.TemplateName, &cv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if cv.Skills, err = r.loadStrings(ctx, "cv_skills", "skill", cv.ID); err != nil {
		return nil, err
	}
	if cv.Languages, err = r.loadStrings(ctx, "cv_languages", "language", cv.ID); err != nil {
		return nil, err
	}
	if err := r.loadEducations(ctx, cv); err != nil {
		return nil, err
	}
	if err := r.loadWorkExperiences(ctx, cv); err != nil {
		return nil, err
	}
	if err := r.loadCertifications(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func (r *cvRepository) Upsert(ctx context.Context, cv *domain.CV) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO cvs (id, job_seeker_id, professional_title, bio, linkedin_url, github_url,
                         portfolio_url, file_url, template_name, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (job_seeker_id) DO UPDATE
        SET professional_title = EXCLUDED.professional_title,
            bio = EXCLUDED.bio,
            linkedin_url = EXCLUDED.linkedin_url,
            github_url = EXCLUDED.github_url,
            portfolio_url = EXCLUDED.portfolio_url,
            template_name = EXCLUDED.template_name,
            updated_at = EXCLUDED.updated_at
        RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		cv.ID, cv.JobSeekerID, cv.ProfessionalTitle, cv.Bio, cv.LinkedinURL,
		cv.GithubURL, cv.PortfolioURL, cv.FileURL, cv.TemplateName, time.Now(),
	).Scan(&cv.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert cv")
		return err
	}

	if cv.Skills != nil {
		if err := r.replaceStrings(ctx, tx, "cv_skills", "skill", cv.ID, cv.Skills); err != nil {
			return err
		}
	}
	if cv.Languages != nil {
		if err := r.replaceStrings(ctx, tx, "cv_languages", "language", cv.ID, cv.Languages); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *cvRepository) SetFileURL(ctx context.Context, jobSeekerID uuid.UUID, fileURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cvs SET file_url = $2, updated_at = $3 WHERE job_seeker_id = $1`,
		jobSeekerID, fileURL, time.Now())
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "set cv file url")
}

func (r *cvRepository) AddEducation(ctx context.Context, cvID uuid.UUID, edu *domain.Education) error {
	query := `
        INSERT INTO cv_educations (id, cv_id, institution, degree, field_of_study,
                                   start_date, end_date, is_current, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		edu.ID, cvID, edu.Institution, edu.Degree, edu.FieldOfStudy,
		nullTime(edu.StartDate), nullTime(edu.EndDate), edu.IsCurrent, edu.Description)
	return err
}

func (r *cvRepository) AddWorkExperience(ctx context.Context, cvID uuid.UUID, exp *domain.WorkExperience) error {
	query := `
        INSERT INTO cv_work_experiences (id, cv_id, company, position,
                                         start_date, end_date, is_current, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		exp.ID, cvID, exp.Company, exp.Position,
		nullTime(exp.StartDate), nullTime(exp.EndDate), exp.IsCurrent, exp.Description)
	return err
}

func (r *cvRepository) AddCertification(ctx context.Context, cvID uuid.UUID, cert *domain.Certification) error {
	query := `
        INSERT INTO cv_certifications (id, cv_id, name, issuing_organization,
                                       issue_date, expiration_date, credential_id, credential_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		cert.ID, cvID, cert.Name, cert.IssuingOrganization,
		nullTime(cert.IssueDate), nullTime(cert.ExpirationDate), cert.CredentialID, cert.CredentialURL)
	return err
}

func (r *cvRepository) loadStrings(ctx context.Context, table, column string, cvID uuid.UUID) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE cv_id = $1 ORDER BY position`, column, table)
	rows, err := r.db.QueryContext(ctx, query, cvID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (r *cvRepository) replaceStrings(ctx context.Context, tx *sql.Tx, table, column string, cvID uuid.UUID, values []string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE cv_id = $1`, table), cvID); err != nil {
		return err
	}
	for i, value := range values {
		query := fmt.Sprintf(`INSERT INTO %s (cv_id, position, %s) VALUES ($1, $2, $3)`, table, column)
		if _, err := tx.ExecContext(ctx, query, cvID, i, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *cvRepository) loadEducations(ctx context.Context, cv *domain.CV) error {
	query := `
        SELECT id, cv_id, institution, degree, field_of_study, start_date, end_date, is_current, description
        FROM cv_educations WHERE cv_id = $1 ORDER BY start_date DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, cv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cv.Educations = []domain.Education{}
	for rows.Next() {
		var edu domain.Education
		var start, end sql.NullTime
		if err := rows.Scan(&edu.ID, &edu.CVID, &edu.Institution, &edu.Degree, &edu.FieldOfStudy,
			&start, &end, &edu.IsCurrent, &edu.Description); err != nil {
			return err
		}
		if start.Valid {
			edu.StartDate = &start.Time
		}
		if end.Valid {
			edu.EndDate = &end.Time
		}
		cv.Educations = append(cv.Educations, edu)
	}
	return rows.Err()
}

func (r *cvRepository) loadWorkExperiences(ctx context.Context, cv *domain.CV) error {
	query := `
        SELECT id, cv_id, company, position, start_date, end_date, is_current, description
        FROM cv_work_experiences WHERE cv_id = $1 ORDER BY start_date DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, cv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cv.WorkExperiences = []domain.WorkExperience{}
	for rows.Next() {
		var exp domain.WorkExperience
		var start, end sql.NullTime
		if err := rows.Scan(&exp.ID, &exp.CVID, &exp.Company, &exp.Position,
			&start, &end, &exp.IsCurrent, &exp.Description); err != nil {
			return err
		}
		if start.Valid {
			exp.StartDate = &start.Time
		}
		if end.Valid {
			exp.EndDate = &end.Time
		}
		cv.WorkExperiences = append(cv.WorkExperiences, exp)
	}
	return rows.Err()
}

func (r *cvRepository) loadCertifications(ctx context.Context, cv *domain.CV) error {
	query := `
        SELECT id, cv_id, name, issuing_organization, issue_date, expiration_date, credential_id, credential_url
        FROM cv_certifications WHERE cv_id = $1 ORDER BY issue_date DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, cv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cv.Certifications = []domain.Certification{}
	for rows.Next() {
		var cert domain.Certification
		var issued, expires sql.NullTime
		if err := rows.Scan(&cert.ID, &cert.CVID, &cert.Name, &cert.IssuingOrganization,
			&issued, &expires, &cert.CredentialID, &cert.CredentialURL); err != nil {
			return err
		}
		if issued.Valid {
			cert.IssueDate = &issued.Time
		}
		if expires.Valid {
			cert.ExpirationDate = &expires.Time
		}
		cv.Certifications = append(cv.Certifications, cert)
	}
	return rows.Err()
}
