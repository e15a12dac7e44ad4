package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func NewPostgresConnection(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Statements are idempotent so restarts are
// safe.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    phone_number TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    is_locked BOOLEAN NOT NULL DEFAULT FALSE,

    -- job seeker columns
    date_of_birth DATE,
    address TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    postal_code TEXT NOT NULL DEFAULT '',
    profile_summary TEXT NOT NULL DEFAULT '',
    profile_headline TEXT NOT NULL DEFAULT '',
    profile_picture_url TEXT NOT NULL DEFAULT '',
    years_of_experience INT,

    -- employer columns
    company_name TEXT NOT NULL DEFAULT '',
    company_description TEXT NOT NULL DEFAULT '',
    company_website TEXT NOT NULL DEFAULT '',
    company_logo_url TEXT NOT NULL DEFAULT '',
    company_size TEXT NOT NULL DEFAULT '',
    industry TEXT NOT NULL DEFAULT '',
    is_approved BOOLEAN NOT NULL DEFAULT FALSE,
    approval_status TEXT NOT NULL DEFAULT 'PENDING',

    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);

CREATE TABLE IF NOT EXISTS jobs (
    id UUID PRIMARY KEY,
    employer_id UUID NOT NULL REFERENCES users (id),
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    requirements TEXT NOT NULL DEFAULT '',
    responsibilities TEXT NOT NULL DEFAULT '',
    job_type TEXT NOT NULL,
    experience_level TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    salary_min BIGINT,
    salary_max BIGINT,
    salary_currency TEXT NOT NULL DEFAULT 'USD',
    is_remote BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    approval_status TEXT NOT NULL DEFAULT 'PENDING',
    application_deadline DATE,
    vacancies INT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS jobs_employer_idx ON jobs (employer_id);
CREATE INDEX IF NOT EXISTS jobs_visibility_idx ON jobs (is_active, approval_status);

CREATE TABLE IF NOT EXISTS job_skills (
    job_id UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
    position INT NOT NULL,
    skill TEXT NOT NULL,
    PRIMARY KEY (job_id, position)
);

CREATE TABLE IF NOT EXISTS job_benefits (
    job_id UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
    position INT NOT NULL,
    benefit TEXT NOT NULL,
    PRIMARY KEY (job_id, position)
);

CREATE TABLE IF NOT EXISTS job_applications (
    id UUID PRIMARY KEY,
    job_id UUID NOT NULL REFERENCES jobs (id),
    job_seeker_id UUID NOT NULL REFERENCES users (id),
    cover_letter TEXT NOT NULL DEFAULT '',
    cv_file_url TEXT NOT NULL DEFAULT '',
    application_date TIMESTAMPTZ NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    UNIQUE (job_id, job_seeker_id)
);

CREATE INDEX IF NOT EXISTS job_applications_seeker_idx ON job_applications (job_seeker_id);
CREATE INDEX IF NOT EXISTS job_applications_job_idx ON job_applications (job_id);

CREATE TABLE IF NOT EXISTS cvs (
    id UUID PRIMARY KEY,
    job_seeker_id UUID NOT NULL UNIQUE REFERENCES users (id),
    professional_title TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT '',
    linkedin_url TEXT NOT NULL DEFAULT '',
    github_url TEXT NOT NULL DEFAULT '',
    portfolio_url TEXT NOT NULL DEFAULT '',
    file_url TEXT NOT NULL DEFAULT '',
    template_name TEXT NOT NULL DEFAULT 'default',
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cv_skills (
    cv_id UUID NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
    position INT NOT NULL,
    skill TEXT NOT NULL,
    PRIMARY KEY (cv_id, position)
);

CREATE TABLE IF NOT EXISTS cv_languages (
    cv_id UUID NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
    position INT NOT NULL,
    language TEXT NOT NULL,
    PRIMARY KEY (cv_id, position)
);

CREATE TABLE IF NOT EXISTS cv_educations (
    id UUID PRIMARY KEY,
    cv_id UUID NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
    institution TEXT NOT NULL,
    degree TEXT NOT NULL,
    field_of_study TEXT NOT NULL DEFAULT '',
    start_date DATE,
    end_date DATE,
    is_current BOOLEAN NOT NULL DEFAULT FALSE,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cv_work_experiences (
    id UUID PRIMARY KEY,
    cv_id UUID NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
    company TEXT NOT NULL,
    position TEXT NOT NULL,
    start_date DATE,
    end_date DATE,
    is_current BOOLEAN NOT NULL DEFAULT FALSE,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cv_certifications (
    id UUID PRIMARY KEY,
    cv_id UUID NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    issuing_organization TEXT NOT NULL DEFAULT '',
    issue_date DATE,
    expiration_date DATE,
    credential_id TEXT NOT NULL DEFAULT '',
    credential_url TEXT NOT NULL DEFAULT ''
);
`
