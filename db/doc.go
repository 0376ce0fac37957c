// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Dialects

Two dialects are supported:

  - Postgres: github.com/lib/pq, for the hosted instance
  - SQLite: modernc.org/sqlite, for local use and tests

Queries are written with ? placeholders and rewritten per dialect:

	query := db.Postgres.Rebind("SELECT * FROM users WHERE user_id = ?")
	// SELECT * FROM users WHERE user_id = $1

# Schema Creation

CreateSchema initializes all required tables and the reporting view:

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: account and contact data
  - caregiver: caregiver profile, key shared with users
  - member: care-seeking member profile, key shared with users
  - address: member address, key shared with member
  - job: job postings by members
  - job_application: caregiver applications to jobs
  - appointment: scheduled work between caregiver and member

# Relationships

	users 1──1 caregiver
	users 1──1 member
	member 1──1 address
	member 1──* job
	caregiver *──* job (via job_application)
	caregiver 1──* appointment *──1 member

Foreign keys have no ON DELETE action. Deletes are ordered by the store
package so no row is ever orphaned.

# Views

job_applications_view joins job_application, caregiver, users and job:
caregiver_user_id, job_id, date_applied, applicant_name,
required_caregiving_type.
*/
package db
