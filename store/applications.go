// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const jobApplicationColumns = `caregiver_user_id, job_id, date_applied`

func scanJobApplication(row rowScanner) (models.JobApplication, error) {
	var a models.JobApplication
	err := row.Scan(&a.CaregiverUserID, &a.JobID, &a.DateApplied)
	return a, err
}

// CreateJobApplication records a caregiver applying to a job. A zero
// DateApplied is set to today. Applying twice is ErrAlreadyExists.
func (s *Store) CreateJobApplication(ctx context.Context, a models.JobApplication) (models.JobApplication, error) {
	if err := validateJobApplication(a); err != nil {
		return models.JobApplication{}, err
	}
	if a.DateApplied.IsZero() {
		a.DateApplied = models.Today()
	}

	err := s.inTx(ctx, func(sc *scope) error {
		_, err := sc.exec(ctx, `
			INSERT INTO job_application (caregiver_user_id, job_id, date_applied)
			VALUES (?, ?, ?)
		`, a.CaregiverUserID, a.JobID, a.DateApplied)
		return err
	})
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("create job application %d/%d: %w", a.CaregiverUserID, a.JobID, err)
	}
	return a, nil
}

// GetJobApplication returns the application of caregiverID to jobID.
func (s *Store) GetJobApplication(ctx context.Context, caregiverID, jobID int64) (models.JobApplication, error) {
	a, err := withTx(ctx, s, func(sc *scope) (models.JobApplication, error) {
		a, err := scanJobApplication(sc.row(ctx,
			`SELECT `+jobApplicationColumns+` FROM job_application WHERE caregiver_user_id = ? AND job_id = ?`,
			caregiverID, jobID,
		))
		return a, classify(err)
	})
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("get job application %d/%d: %w", caregiverID, jobID, err)
	}
	return a, nil
}

func (sc *scope) listJobApplications(ctx context.Context) ([]models.JobApplication, error) {
	rows, err := sc.query(ctx, `SELECT `+jobApplicationColumns+` FROM job_application ORDER BY caregiver_user_id, job_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJobApplication)
}

// ListJobApplications returns every application ordered by its composite key.
func (s *Store) ListJobApplications(ctx context.Context) ([]models.JobApplication, error) {
	apps, err := withTx(ctx, s, func(sc *scope) ([]models.JobApplication, error) {
		return sc.listJobApplications(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return apps, nil
}

// ListJobApplicationListings returns applications with caregiver and member
// names, ordered by job then caregiver.
func (s *Store) ListJobApplicationListings(ctx context.Context) ([]models.JobApplicationListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.JobApplicationListing, error) {
		rows, err := sc.query(ctx, `
			SELECT ja.caregiver_user_id, ja.job_id, ja.date_applied,
			       cu.given_name || ' ' || cu.surname,
			       mu.given_name || ' ' || mu.surname,
			       j.required_caregiving_type
			FROM job_application ja
			JOIN users cu ON ja.caregiver_user_id = cu.user_id
			JOIN job j ON ja.job_id = j.job_id
			JOIN users mu ON j.member_user_id = mu.user_id
			ORDER BY ja.job_id, ja.caregiver_user_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.JobApplicationListing, error) {
			var l models.JobApplicationListing
			err := row.Scan(
				&l.CaregiverUserID, &l.JobID, &l.DateApplied,
				&l.CaregiverName, &l.MemberName, &l.RequiredCaregivingType,
			)
			return l, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list job application listings: %w", err)
	}
	return listings, nil
}

// UpdateJobApplication replaces date_applied. A zero date is set to today.
func (s *Store) UpdateJobApplication(ctx context.Context, caregiverID, jobID int64, a models.JobApplication) (models.JobApplication, error) {
	a.CaregiverUserID = caregiverID
	a.JobID = jobID
	if err := validateJobApplication(a); err != nil {
		return models.JobApplication{}, err
	}
	if a.DateApplied.IsZero() {
		a.DateApplied = models.Today()
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx, `
			UPDATE job_application SET date_applied = ?
			WHERE caregiver_user_id = ? AND job_id = ?
		`, a.DateApplied, caregiverID, jobID)
	})
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("update job application %d/%d: %w", caregiverID, jobID, err)
	}
	return a, nil
}

// DeleteJobApplication withdraws one application.
func (s *Store) DeleteJobApplication(ctx context.Context, caregiverID, jobID int64) ([]models.DeletedRows, error) {
	key := models.JobApplication{CaregiverUserID: caregiverID, JobID: jobID}
	if err := validateJobApplication(key); err != nil {
		return nil, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx,
			`DELETE FROM job_application WHERE caregiver_user_id = ? AND job_id = ?`,
			caregiverID, jobID,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("delete job application %d/%d: %w", caregiverID, jobID, err)
	}
	return []models.DeletedRows{{Table: string(TableJobApplications), Rows: 1}}, nil
}
