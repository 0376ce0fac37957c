// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables and the reporting view for the dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, dialect Dialect) error {
	var ddl string
	switch dialect {
	case Postgres:
		ddl = postgresSchema
	case SQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("failed to create schema: unsupported dialect %q", dialect)
	}

	_, err := conn.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Foreign keys carry no ON DELETE action; store cascades delete children itself.
const postgresSchema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    given_name TEXT NOT NULL,
    surname TEXT NOT NULL,
    city TEXT,
    phone_number TEXT,
    profile_description TEXT,
    password TEXT NOT NULL
);

-- Caregivers (1:1 with users)
CREATE TABLE IF NOT EXISTS caregiver (
    caregiver_user_id INTEGER PRIMARY KEY REFERENCES users(user_id),
    photo TEXT,
    gender TEXT,
    caregiving_type TEXT NOT NULL,
    hourly_rate NUMERIC(10, 2) NOT NULL CHECK (hourly_rate >= 0)
);

-- Members (1:1 with users)
CREATE TABLE IF NOT EXISTS member (
    member_user_id INTEGER PRIMARY KEY REFERENCES users(user_id),
    house_rules TEXT,
    dependent_description TEXT
);

-- Addresses (1:1 with members)
CREATE TABLE IF NOT EXISTS address (
    member_user_id INTEGER PRIMARY KEY REFERENCES member(member_user_id),
    house_number TEXT,
    street TEXT,
    town TEXT
);

-- Jobs
CREATE TABLE IF NOT EXISTS job (
    job_id SERIAL PRIMARY KEY,
    member_user_id INTEGER NOT NULL REFERENCES member(member_user_id),
    required_caregiving_type TEXT NOT NULL,
    other_requirements TEXT,
    date_posted DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_job_member_user_id ON job(member_user_id);

-- Job applications
CREATE TABLE IF NOT EXISTS job_application (
    caregiver_user_id INTEGER NOT NULL REFERENCES caregiver(caregiver_user_id),
    job_id INTEGER NOT NULL REFERENCES job(job_id),
    date_applied DATE NOT NULL,
    PRIMARY KEY (caregiver_user_id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_job_application_job_id ON job_application(job_id);

-- Appointments
CREATE TABLE IF NOT EXISTS appointment (
    appointment_id SERIAL PRIMARY KEY,
    caregiver_user_id INTEGER NOT NULL REFERENCES caregiver(caregiver_user_id),
    member_user_id INTEGER NOT NULL REFERENCES member(member_user_id),
    appointment_date DATE NOT NULL,
    appointment_time TIME NOT NULL,
    work_hours NUMERIC(6, 2) NOT NULL CHECK (work_hours > 0),
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'accepted', 'rejected', 'completed', 'cancelled'))
);

CREATE INDEX IF NOT EXISTS idx_appointment_caregiver_user_id ON appointment(caregiver_user_id);
CREATE INDEX IF NOT EXISTS idx_appointment_member_user_id ON appointment(member_user_id);
CREATE INDEX IF NOT EXISTS idx_appointment_status ON appointment(status);

-- Reporting view
CREATE OR REPLACE VIEW job_applications_view AS
SELECT
    ja.caregiver_user_id,
    ja.job_id,
    ja.date_applied,
    u.given_name || ' ' || u.surname AS applicant_name,
    j.required_caregiving_type
FROM job_application ja
JOIN caregiver cg ON ja.caregiver_user_id = cg.caregiver_user_id
JOIN users u ON cg.caregiver_user_id = u.user_id
JOIN job j ON ja.job_id = j.job_id;
`

// SQLite keeps dates and times as ISO text so ordering and comparison stay lexical.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    given_name TEXT NOT NULL,
    surname TEXT NOT NULL,
    city TEXT,
    phone_number TEXT,
    profile_description TEXT,
    password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS caregiver (
    caregiver_user_id INTEGER PRIMARY KEY REFERENCES users(user_id),
    photo TEXT,
    gender TEXT,
    caregiving_type TEXT NOT NULL,
    hourly_rate REAL NOT NULL CHECK (hourly_rate >= 0)
);

CREATE TABLE IF NOT EXISTS member (
    member_user_id INTEGER PRIMARY KEY REFERENCES users(user_id),
    house_rules TEXT,
    dependent_description TEXT
);

CREATE TABLE IF NOT EXISTS address (
    member_user_id INTEGER PRIMARY KEY REFERENCES member(member_user_id),
    house_number TEXT,
    street TEXT,
    town TEXT
);

CREATE TABLE IF NOT EXISTS job (
    job_id INTEGER PRIMARY KEY AUTOINCREMENT,
    member_user_id INTEGER NOT NULL REFERENCES member(member_user_id),
    required_caregiving_type TEXT NOT NULL,
    other_requirements TEXT,
    date_posted TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_job_member_user_id ON job(member_user_id);

CREATE TABLE IF NOT EXISTS job_application (
    caregiver_user_id INTEGER NOT NULL REFERENCES caregiver(caregiver_user_id),
    job_id INTEGER NOT NULL REFERENCES job(job_id),
    date_applied TEXT NOT NULL,
    PRIMARY KEY (caregiver_user_id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_job_application_job_id ON job_application(job_id);

CREATE TABLE IF NOT EXISTS appointment (
    appointment_id INTEGER PRIMARY KEY AUTOINCREMENT,
    caregiver_user_id INTEGER NOT NULL REFERENCES caregiver(caregiver_user_id),
    member_user_id INTEGER NOT NULL REFERENCES member(member_user_id),
    appointment_date TEXT NOT NULL,
    appointment_time TEXT NOT NULL,
    work_hours REAL NOT NULL CHECK (work_hours > 0),
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'accepted', 'rejected', 'completed', 'cancelled'))
);

CREATE INDEX IF NOT EXISTS idx_appointment_caregiver_user_id ON appointment(caregiver_user_id);
CREATE INDEX IF NOT EXISTS idx_appointment_member_user_id ON appointment(member_user_id);
CREATE INDEX IF NOT EXISTS idx_appointment_status ON appointment(status);

CREATE VIEW IF NOT EXISTS job_applications_view AS
SELECT
    ja.caregiver_user_id,
    ja.job_id,
    ja.date_applied,
    u.given_name || ' ' || u.surname AS applicant_name,
    j.required_caregiving_type
FROM job_application ja
JOIN caregiver cg ON ja.caregiver_user_id = cg.caregiver_user_id
JOIN users u ON cg.caregiver_user_id = u.user_id
JOIN job j ON ja.job_id = j.job_id;
`
