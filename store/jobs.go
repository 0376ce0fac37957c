// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const jobColumns = `job_id, member_user_id, required_caregiving_type, other_requirements, date_posted`

func scanJob(row rowScanner) (models.Job, error) {
	var j models.Job
	err := row.Scan(&j.JobID, &j.MemberUserID, &j.RequiredCaregivingType, &j.OtherRequirements, &j.DatePosted)
	return j, err
}

// CreateJob posts a job for a member and returns it with its job_id.
// A zero DatePosted is set to today.
func (s *Store) CreateJob(ctx context.Context, j models.Job) (models.Job, error) {
	if err := validateJob(j); err != nil {
		return models.Job{}, err
	}
	if j.DatePosted.IsZero() {
		j.DatePosted = models.Today()
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.queryRow(ctx, []any{&j.JobID}, `
			INSERT INTO job (member_user_id, required_caregiving_type, other_requirements, date_posted)
			VALUES (?, ?, ?, ?)
			RETURNING job_id
		`, j.MemberUserID, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted)
	})
	if err != nil {
		return models.Job{}, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

// GetJob returns one job by job_id.
func (s *Store) GetJob(ctx context.Context, jobID int64) (models.Job, error) {
	j, err := withTx(ctx, s, func(sc *scope) (models.Job, error) {
		j, err := scanJob(sc.row(ctx, `SELECT `+jobColumns+` FROM job WHERE job_id = ?`, jobID))
		return j, classify(err)
	})
	if err != nil {
		return models.Job{}, fmt.Errorf("get job %d: %w", jobID, err)
	}
	return j, nil
}

func (sc *scope) listJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := sc.query(ctx, `SELECT `+jobColumns+` FROM job ORDER BY job_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJob)
}

// ListJobs returns every job ordered by job_id.
func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := withTx(ctx, s, func(sc *scope) ([]models.Job, error) {
		return sc.listJobs(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListJobListings returns jobs with the posting member's name and email.
func (s *Store) ListJobListings(ctx context.Context) ([]models.JobListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.JobListing, error) {
		rows, err := sc.query(ctx, `
			SELECT j.job_id, j.member_user_id, j.required_caregiving_type, j.other_requirements, j.date_posted,
			       u.given_name, u.surname, u.email
			FROM job j
			JOIN member m ON j.member_user_id = m.member_user_id
			JOIN users u ON m.member_user_id = u.user_id
			ORDER BY j.job_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.JobListing, error) {
			var l models.JobListing
			err := row.Scan(
				&l.JobID, &l.MemberUserID, &l.RequiredCaregivingType, &l.OtherRequirements, &l.DatePosted,
				&l.GivenName, &l.Surname, &l.Email,
			)
			return l, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list job listings: %w", err)
	}
	return listings, nil
}

// UpdateJob replaces required_caregiving_type, other_requirements and
// date_posted. The owning member cannot change.
func (s *Store) UpdateJob(ctx context.Context, jobID int64, j models.Job) (models.Job, error) {
	if err := validateKey("job_id", jobID); err != nil {
		return models.Job{}, err
	}
	if blank(j.RequiredCaregivingType) {
		return models.Job{}, invalid("required_caregiving_type is required")
	}
	if j.DatePosted.IsZero() {
		j.DatePosted = models.Today()
	}

	updated, err := withTx(ctx, s, func(sc *scope) (models.Job, error) {
		err := sc.execOne(ctx, `
			UPDATE job
			SET required_caregiving_type = ?, other_requirements = ?, date_posted = ?
			WHERE job_id = ?
		`, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted, jobID)
		if err != nil {
			return models.Job{}, err
		}
		out, err := scanJob(sc.row(ctx, `SELECT `+jobColumns+` FROM job WHERE job_id = ?`, jobID))
		return out, classify(err)
	})
	if err != nil {
		return models.Job{}, fmt.Errorf("update job %d: %w", jobID, err)
	}
	return updated, nil
}

// DeleteJob removes the job's applications, then the job.
func (s *Store) DeleteJob(ctx context.Context, jobID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteJobPlan, jobID)
}
