package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobportal/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, phone_number,
        role, is_enabled, is_locked,
        date_of_birth, address, city, country, postal_code,
        profile_summary, profile_headline, profile_picture_url, years_of_experience,
        company_name, company_description, company_website, company_logo_url,
        company_size, industry, is_approved, approval_status,
        created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
                $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`

	seeker := user.Seeker
	if seeker == nil {
		seeker = &domain.JobSeekerProfile{}
	}
	employer := user.Employer
	if employer == nil {
		employer = &domain.EmployerProfile{ApprovalStatus: domain.ApprovalPending}
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.PhoneNumber,
		user.Role, user.IsEnabled, user.IsLocked,
		nullTime(seeker.DateOfBirth), seeker.Address, seeker.City, seeker.Country, seeker.PostalCode,
		seeker.ProfileSummary, seeker.ProfileHeadline, seeker.ProfilePictureURL, nullInt(seeker.YearsOfExperience),
		employer.CompanyName, employer.CompanyDescription, employer.CompanyWebsite, employer.CompanyLogoURL,
		employer.CompanySize, employer.Industry, employer.IsApproved, employer.ApprovalStatus,
		user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.NewDuplicateError("email or username already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&found)
	return found, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
        UPDATE users
        SET first_name = $2, last_name = $3, phone_number = $4,
            date_of_birth = $5, address = $6, city = $7, country = $8, postal_code = $9,
            profile_summary = $10, profile_headline = $11, profile_picture_url = $12,
            years_of_experience = $13,
            company_name = $14, company_description = $15, company_website = $16,
            company_logo_url = $17, company_size = $18, industry = $19,
            updated_at = $20
        WHERE id = $1`

	seeker := user.Seeker
	if seeker == nil {
		seeker = &domain.JobSeekerProfile{}
	}
	employer := user.Employer
	if employer == nil {
		employer = &domain.EmployerProfile{}
	}

	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.PhoneNumber,
		nullTime(seeker.DateOfBirth), seeker.Address, seeker.City, seeker.Country, seeker.PostalCode,
		seeker.ProfileSummary, seeker.ProfileHeadline, seeker.ProfilePictureURL, nullInt(seeker.YearsOfExperience),
		employer.CompanyName, employer.CompanyDescription, employer.CompanyWebsite,
		employer.CompanyLogoURL, employer.CompanySize, employer.Industry,
		time.Now(),
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "update user")
}

func (r *userRepository) SetEmployerApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, approved bool) error {
	query := `
        UPDATE users
        SET approval_status = $2, is_approved = $3, updated_at = $4
        WHERE id = $1 AND role = $5`

	result, err := r.db.ExecContext(ctx, query, id, status, approved, time.Now(), domain.RoleEmployer)
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "set employer approval")
}

func (r *userRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_enabled = $2, updated_at = $3 WHERE id = $1`,
		id, enabled, time.Now())
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "set user enabled")
}

func (r *userRepository) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_locked = $2, updated_at = $3 WHERE id = $1`,
		id, locked, time.Now())
	if err != nil {
		return err
	}
	return checkRowsAffected(result, "set user locked")
}

// Delete removes the user and everything that is meaningless without it.
// Ordering matters: applications and CV children first, then jobs, then the
// user row, all in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		// Applications on the user's own jobs (employer side).
		`DELETE FROM job_applications WHERE job_id IN (SELECT id FROM jobs WHERE employer_id = $1)`,
		`DELETE FROM job_skills WHERE job_id IN (SELECT id FROM jobs WHERE employer_id = $1)`,
		`DELETE FROM job_benefits WHERE job_id IN (SELECT id FROM jobs WHERE employer_id = $1)`,
		`DELETE FROM jobs WHERE employer_id = $1`,
		// Applications the user filed (seeker side).
		`DELETE FROM job_applications WHERE job_seeker_id = $1`,
		// CV tree.
		`DELETE FROM cv_skills WHERE cv_id IN (SELECT id FROM cvs WHERE job_seeker_id = $1)`,
		`DELETE FROM cv_languages WHERE cv_id IN (SELECT id FROM cvs WHERE job_seeker_id = $1)`,
		`DELETE FROM cv_educations WHERE cv_id IN (SELECT id FROM cvs WHERE job_seeker_id = $1)`,
		`DELETE FROM cv_work_experiences WHERE cv_id IN (SELECT id FROM cvs WHERE job_seeker_id = $1)`,
		`DELETE FROM cv_certifications WHERE cv_id IN (SELECT id FROM cvs WHERE job_seeker_id = $1)`,
		`DELETE FROM cvs WHERE job_seeker_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			log.Error().Err(err).Msg("failed to cascade user delete")
			return err
		}
	}

	return tx.Commit()
}

func (r *userRepository) List(ctx context.Context, role *domain.Role, offset, limit int) ([]*domain.User, int64, error) {
	offset, limit = clampPage(offset, limit)

	countQuery := `SELECT COUNT(*) FROM users`
	listQuery := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != nil {
		countQuery += ` WHERE role = $1`
		listQuery += ` WHERE role = $1`
		args = append(args, *role)
	}
	listQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

func (r *userRepository) PendingEmployers(ctx context.Context) ([]*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE role = $1 AND approval_status = $2
        ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, domain.RoleEmployer, domain.ApprovalPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employers := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employer: %w", err)
		}
		employers = append(employers, user)
	}
	return employers, rows.Err()
}

func (r *userRepository) Counts(ctx context.Context) (domain.UserCounts, error) {
	var counts domain.UserCounts
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE role = $1),
               COUNT(*) FILTER (WHERE role = $2)
        FROM users`
	err := r.db.QueryRowContext(ctx, query, domain.RoleJobSeeker, domain.RoleEmployer).
		Scan(&counts.Total, &counts.JobSeekers, &counts.Employers)
	return counts, err
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	user := &domain.User{}
	var (
		dateOfBirth sql.NullTime
		yearsExp    sql.NullInt64
		seeker      domain.JobSeekerProfile
		employer    domain.EmployerProfile
	)

	err := scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.PhoneNumber,
		&user.Role, &user.IsEnabled, &user.IsLocked,
		&dateOfBirth, &seeker.Address, &seeker.City, &seeker.Country, &seeker.PostalCode,
		&seeker.ProfileSummary, &seeker.ProfileHeadline, &seeker.ProfilePictureURL, &yearsExp,
		&employer.CompanyName, &employer.CompanyDescription, &employer.CompanyWebsite, &employer.CompanyLogoURL,
		&employer.CompanySize, &employer.Industry, &employer.IsApproved, &employer.ApprovalStatus,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case domain.RoleJobSeeker:
		if dateOfBirth.Valid {
			seeker.DateOfBirth = &dateOfBirth.Time
		}
		if yearsExp.Valid {
			years := int(yearsExp.Int64)
			seeker.YearsOfExperience = &years
		}
		user.Seeker = &seeker
	case domain.RoleEmployer:
		user.Employer = &employer
	}

	return user, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func checkRowsAffected(result sql.Result, operation string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msgf("failed to get rows affected for %s", operation)
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func clampPage(offset, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
