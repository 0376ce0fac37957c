// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/caregivers/models"
)

// likePattern wraps s for a substring LIKE match with ! as the escape character.
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(s) + "%"
}

// SearchJobsByRequirement returns jobs whose other_requirements contain substr.
// Case sensitivity follows the database's LIKE.
func (s *Store) SearchJobsByRequirement(ctx context.Context, substr string) ([]models.Job, error) {
	if blank(substr) {
		return nil, invalid("search text is required")
	}

	jobs, err := withTx(ctx, s, func(sc *scope) ([]models.Job, error) {
		rows, err := sc.query(ctx, `
			SELECT `+jobColumns+`
			FROM job
			WHERE other_requirements LIKE ? ESCAPE '!'
			ORDER BY job_id
		`, likePattern(substr))
		if err != nil {
			return nil, err
		}
		return collect(rows, scanJob)
	})
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, nil
}

// SearchMembers returns members matching every non-empty filter: a posted job
// requiring careType, a user city equal to city, house rules containing rule.
func (s *Store) SearchMembers(ctx context.Context, careType, city, rule string) ([]models.MemberMatch, error) {
	var (
		where []string
		args  []any
	)
	if !blank(careType) {
		where = append(where, `EXISTS (SELECT 1 FROM job j WHERE j.member_user_id = m.member_user_id AND j.required_caregiving_type = ?)`)
		args = append(args, careType)
	}
	if !blank(city) {
		where = append(where, `u.city = ?`)
		args = append(args, city)
	}
	if !blank(rule) {
		where = append(where, `m.house_rules LIKE ? ESCAPE '!'`)
		args = append(args, likePattern(rule))
	}

	q := `
		SELECT m.member_user_id, u.given_name || ' ' || u.surname, u.city, m.house_rules
		FROM member m
		JOIN users u ON m.member_user_id = u.user_id
	`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY m.member_user_id"

	matches, err := withTx(ctx, s, func(sc *scope) ([]models.MemberMatch, error) {
		rows, err := sc.query(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.MemberMatch, error) {
			var m models.MemberMatch
			err := row.Scan(&m.MemberUserID, &m.MemberName, &m.City, &m.HouseRules)
			return m, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return matches, nil
}

// WorkHoursByCaregivingType lists the appointments served by caregivers of
// the given caregiving type.
func (s *Store) WorkHoursByCaregivingType(ctx context.Context, caregivingType string) ([]models.AppointmentHours, error) {
	if blank(caregivingType) {
		return nil, invalid("caregiving_type is required")
	}

	hours, err := withTx(ctx, s, func(sc *scope) ([]models.AppointmentHours, error) {
		rows, err := sc.query(ctx, `
			SELECT a.appointment_id, a.work_hours, a.appointment_date, a.appointment_time
			FROM appointment a
			JOIN caregiver c ON a.caregiver_user_id = c.caregiver_user_id
			WHERE c.caregiving_type = ?
			ORDER BY a.appointment_id
		`, caregivingType)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.AppointmentHours, error) {
			var h models.AppointmentHours
			err := row.Scan(&h.AppointmentID, &h.WorkHours, &h.AppointmentDate, &h.AppointmentTime)
			return h, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("work hours for %s: %w", caregivingType, err)
	}
	return hours, nil
}

// ApplicantCounts returns the number of applicants for every job, including
// jobs with none, ordered by job_id.
func (s *Store) ApplicantCounts(ctx context.Context) ([]models.JobApplicantCount, error) {
	counts, err := withTx(ctx, s, func(sc *scope) ([]models.JobApplicantCount, error) {
		rows, err := sc.query(ctx, `
			SELECT j.job_id, u.given_name || ' ' || u.surname, j.required_caregiving_type,
			       COUNT(ja.caregiver_user_id)
			FROM job j
			JOIN users u ON j.member_user_id = u.user_id
			LEFT JOIN job_application ja ON j.job_id = ja.job_id
			GROUP BY j.job_id, u.given_name, u.surname, j.required_caregiving_type
			ORDER BY j.job_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.JobApplicantCount, error) {
			var c models.JobApplicantCount
			err := row.Scan(&c.JobID, &c.MemberName, &c.RequiredCaregivingType, &c.ApplicantCount)
			return c, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("applicant counts: %w", err)
	}
	return counts, nil
}

// HoursByCaregiver sums work_hours per caregiver over appointments with the
// given status, largest total first.
func (s *Store) HoursByCaregiver(ctx context.Context, status string) ([]models.CaregiverHours, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	hours, err := withTx(ctx, s, func(sc *scope) ([]models.CaregiverHours, error) {
		rows, err := sc.query(ctx, `
			SELECT c.caregiver_user_id, u.given_name || ' ' || u.surname, SUM(a.work_hours) AS total_hours
			FROM appointment a
			JOIN caregiver c ON a.caregiver_user_id = c.caregiver_user_id
			JOIN users u ON c.caregiver_user_id = u.user_id
			WHERE a.status = ?
			GROUP BY c.caregiver_user_id, u.given_name, u.surname
			ORDER BY total_hours DESC, c.caregiver_user_id
		`, status)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.CaregiverHours, error) {
			var h models.CaregiverHours
			err := row.Scan(&h.CaregiverUserID, &h.CaregiverName, &h.TotalHours)
			return h, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("hours by caregiver: %w", err)
	}
	return hours, nil
}

// averageRateExpr averages hourly_rate over the distinct caregivers having at
// least one appointment with the status bound to its placeholder.
const averageRateExpr = `
	SELECT AVG(hourly_rate)
	FROM caregiver
	WHERE caregiver_user_id IN (SELECT caregiver_user_id FROM appointment WHERE status = ?)
`

// AverageHourlyRate returns the mean hourly_rate of caregivers with at least
// one appointment of the given status. ok is false when there are none.
func (s *Store) AverageHourlyRate(ctx context.Context, status string) (avg float64, ok bool, err error) {
	if err := validateStatus(status); err != nil {
		return 0, false, err
	}

	var out sql.NullFloat64
	err = s.inTx(ctx, func(sc *scope) error {
		return sc.queryRow(ctx, []any{&out}, averageRateExpr, status)
	})
	if err != nil {
		return 0, false, fmt.Errorf("average hourly rate: %w", err)
	}
	return out.Float64, out.Valid, nil
}

// CaregiversAboveAverage returns caregivers with an appointment of the given
// status whose hourly_rate exceeds AverageHourlyRate for that status.
func (s *Store) CaregiversAboveAverage(ctx context.Context, status string) ([]models.CaregiverRate, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	rates, err := withTx(ctx, s, func(sc *scope) ([]models.CaregiverRate, error) {
		rows, err := sc.query(ctx, `
			SELECT c.caregiver_user_id, u.given_name || ' ' || u.surname, c.hourly_rate,
			       (`+averageRateExpr+`) AS average_rate
			FROM caregiver c
			JOIN users u ON c.caregiver_user_id = u.user_id
			WHERE c.caregiver_user_id IN (SELECT caregiver_user_id FROM appointment WHERE status = ?)
			  AND c.hourly_rate > (`+averageRateExpr+`)
			ORDER BY c.hourly_rate DESC, c.caregiver_user_id
		`, status, status, status)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.CaregiverRate, error) {
			var r models.CaregiverRate
			err := row.Scan(&r.CaregiverUserID, &r.CaregiverName, &r.HourlyRate, &r.AverageRate)
			return r, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("caregivers above average: %w", err)
	}
	return rates, nil
}

// TotalCostByCaregiver computes total_cost = sum(hourly_rate * work_hours)
// per caregiver over appointments with the given status, largest first.
func (s *Store) TotalCostByCaregiver(ctx context.Context, status string) ([]models.CaregiverCost, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	costs, err := withTx(ctx, s, func(sc *scope) ([]models.CaregiverCost, error) {
		rows, err := sc.query(ctx, `
			SELECT c.caregiver_user_id, u.given_name || ' ' || u.surname, c.hourly_rate,
			       SUM(a.work_hours), SUM(c.hourly_rate * a.work_hours) AS total_cost
			FROM appointment a
			JOIN caregiver c ON a.caregiver_user_id = c.caregiver_user_id
			JOIN users u ON c.caregiver_user_id = u.user_id
			WHERE a.status = ?
			GROUP BY c.caregiver_user_id, u.given_name, u.surname, c.hourly_rate
			ORDER BY total_cost DESC, c.caregiver_user_id
		`, status)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.CaregiverCost, error) {
			var c models.CaregiverCost
			err := row.Scan(&c.CaregiverUserID, &c.CaregiverName, &c.HourlyRate, &c.TotalHours, &c.TotalCost)
			return c, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("total cost by caregiver: %w", err)
	}
	return costs, nil
}

// ListJobApplicationsView reads job_applications_view.
func (s *Store) ListJobApplicationsView(ctx context.Context) ([]models.JobApplicationView, error) {
	views, err := withTx(ctx, s, func(sc *scope) ([]models.JobApplicationView, error) {
		rows, err := sc.query(ctx, `
			SELECT caregiver_user_id, job_id, date_applied, applicant_name, required_caregiving_type
			FROM job_applications_view
			ORDER BY job_id, caregiver_user_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.JobApplicationView, error) {
			var v models.JobApplicationView
			err := row.Scan(&v.CaregiverUserID, &v.JobID, &v.DateApplied, &v.ApplicantName, &v.RequiredCaregivingType)
			return v, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list job applications view: %w", err)
	}
	return views, nil
}
