// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const appointmentColumns = `appointment_id, caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status`

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.AppointmentID, &a.CaregiverUserID, &a.MemberUserID,
		&a.AppointmentDate, &a.AppointmentTime, &a.WorkHours, &a.Status,
	)
	return a, err
}

// CreateAppointment books a caregiver for a member and returns the row with
// its appointment_id. An empty status becomes pending.
func (s *Store) CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if err := validateAppointment(a); err != nil {
		return models.Appointment{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.queryRow(ctx, []any{&a.AppointmentID}, `
			INSERT INTO appointment (caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING appointment_id
		`, a.CaregiverUserID, a.MemberUserID, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status)
	})
	if err != nil {
		return models.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

// GetAppointment returns one appointment by appointment_id.
func (s *Store) GetAppointment(ctx context.Context, appointmentID int64) (models.Appointment, error) {
	a, err := withTx(ctx, s, func(sc *scope) (models.Appointment, error) {
		a, err := scanAppointment(sc.row(ctx, `SELECT `+appointmentColumns+` FROM appointment WHERE appointment_id = ?`, appointmentID))
		return a, classify(err)
	})
	if err != nil {
		return models.Appointment{}, fmt.Errorf("get appointment %d: %w", appointmentID, err)
	}
	return a, nil
}

func (sc *scope) listAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := sc.query(ctx, `SELECT `+appointmentColumns+` FROM appointment ORDER BY appointment_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAppointment)
}

// ListAppointments returns every appointment ordered by appointment_id.
func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	appts, err := withTx(ctx, s, func(sc *scope) ([]models.Appointment, error) {
		return sc.listAppointments(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

const appointmentListingQuery = `
	SELECT a.appointment_id, a.caregiver_user_id, a.member_user_id,
	       a.appointment_date, a.appointment_time, a.work_hours, a.status,
	       cu.given_name || ' ' || cu.surname,
	       mu.given_name || ' ' || mu.surname
	FROM appointment a
	JOIN users cu ON a.caregiver_user_id = cu.user_id
	JOIN users mu ON a.member_user_id = mu.user_id
`

func scanAppointmentListing(row rowScanner) (models.AppointmentListing, error) {
	var l models.AppointmentListing
	err := row.Scan(
		&l.AppointmentID, &l.CaregiverUserID, &l.MemberUserID,
		&l.AppointmentDate, &l.AppointmentTime, &l.WorkHours, &l.Status,
		&l.CaregiverName, &l.MemberName,
	)
	return l, err
}

// ListAppointmentListings returns appointments with caregiver and member
// names, newest date first and earliest time first within a day.
func (s *Store) ListAppointmentListings(ctx context.Context) ([]models.AppointmentListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.AppointmentListing, error) {
		rows, err := sc.query(ctx, appointmentListingQuery+`
			ORDER BY a.appointment_date DESC, a.appointment_time ASC, a.appointment_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, scanAppointmentListing)
	})
	if err != nil {
		return nil, fmt.Errorf("list appointment listings: %w", err)
	}
	return listings, nil
}

// ListAppointmentsByStatus returns appointment listings with the given status,
// in the same order as ListAppointmentListings.
func (s *Store) ListAppointmentsByStatus(ctx context.Context, status string) ([]models.AppointmentListing, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	listings, err := withTx(ctx, s, func(sc *scope) ([]models.AppointmentListing, error) {
		rows, err := sc.query(ctx, appointmentListingQuery+`
			WHERE a.status = ?
			ORDER BY a.appointment_date DESC, a.appointment_time ASC, a.appointment_id
		`, status)
		if err != nil {
			return nil, err
		}
		return collect(rows, scanAppointmentListing)
	})
	if err != nil {
		return nil, fmt.Errorf("list %s appointments: %w", status, err)
	}
	return listings, nil
}

// UpdateAppointment replaces date, time, work_hours and status. The
// caregiver and member cannot change.
func (s *Store) UpdateAppointment(ctx context.Context, appointmentID int64, a models.Appointment) (models.Appointment, error) {
	if err := validateKey("appointment_id", appointmentID); err != nil {
		return models.Appointment{}, err
	}
	if a.AppointmentDate.IsZero() {
		return models.Appointment{}, invalid("appointment_date is required")
	}
	if !finite(a.WorkHours) || a.WorkHours <= 0 {
		return models.Appointment{}, invalid("work_hours must be greater than zero")
	}
	if err := validateStatus(a.Status); err != nil {
		return models.Appointment{}, err
	}

	updated, err := withTx(ctx, s, func(sc *scope) (models.Appointment, error) {
		err := sc.execOne(ctx, `
			UPDATE appointment
			SET appointment_date = ?, appointment_time = ?, work_hours = ?, status = ?
			WHERE appointment_id = ?
		`, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status, appointmentID)
		if err != nil {
			return models.Appointment{}, err
		}
		out, err := scanAppointment(sc.row(ctx, `SELECT `+appointmentColumns+` FROM appointment WHERE appointment_id = ?`, appointmentID))
		return out, classify(err)
	})
	if err != nil {
		return models.Appointment{}, fmt.Errorf("update appointment %d: %w", appointmentID, err)
	}
	return updated, nil
}

// DeleteAppointment removes one appointment.
func (s *Store) DeleteAppointment(ctx context.Context, appointmentID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteAppointmentPlan, appointmentID)
}
