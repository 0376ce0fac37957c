// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/caregivers/db"
	"github.com/danielhkuo/caregivers/models"
)

// ReadAll returns the contents of every table from one consistent read.
func (s *Store) ReadAll(ctx context.Context) (models.Snapshot, error) {
	snap, err := withTx(ctx, s, func(sc *scope) (models.Snapshot, error) {
		var snap models.Snapshot
		for _, t := range Tables {
			if err := sc.readTable(ctx, t, &snap); err != nil {
				return models.Snapshot{}, err
			}
		}
		return snap, nil
	})
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read all tables: %w", err)
	}
	return snap, nil
}

// ReadTable returns a snapshot with only table t filled in.
func (s *Store) ReadTable(ctx context.Context, t Table) (models.Snapshot, error) {
	snap, err := withTx(ctx, s, func(sc *scope) (models.Snapshot, error) {
		var snap models.Snapshot
		err := sc.readTable(ctx, t, &snap)
		return snap, err
	})
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read %s: %w", t, err)
	}
	return snap, nil
}

// ReplaceTable deletes every row of t and inserts snap's rows for t with
// their keys preserved. Rows in other tables that still reference deleted
// keys make it fail with ErrReferentialIntegrity.
func (s *Store) ReplaceTable(ctx context.Context, t Table, snap models.Snapshot) error {
	if err := validateTable(t, snap); err != nil {
		return err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		if _, err := sc.exec(ctx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
			return err
		}
		if err := sc.insertTable(ctx, t, snap); err != nil {
			return err
		}
		return sc.resyncSequence(ctx, t)
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", t, err)
	}
	return nil
}

// ReplaceAll swaps the whole database for snap. Tables are emptied children
// first and refilled parents first.
func (s *Store) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	for _, t := range Tables {
		if err := validateTable(t, snap); err != nil {
			return err
		}
	}

	err := s.inTx(ctx, func(sc *scope) error {
		for _, t := range slices.Backward(Tables) {
			if _, err := sc.exec(ctx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
				return fmt.Errorf("clear %s: %w", t, err)
			}
		}
		for _, t := range Tables {
			if err := sc.insertTable(ctx, t, snap); err != nil {
				return err
			}
			if err := sc.resyncSequence(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace all tables: %w", err)
	}
	return nil
}

func (sc *scope) readTable(ctx context.Context, t Table, snap *models.Snapshot) error {
	var err error
	switch t {
	case TableUsers:
		snap.Users, err = sc.listUsers(ctx)
	case TableCaregivers:
		snap.Caregivers, err = sc.listCaregivers(ctx)
	case TableMembers:
		snap.Members, err = sc.listMembers(ctx)
	case TableAddresses:
		snap.Addresses, err = sc.listAddresses(ctx)
	case TableJobs:
		snap.Jobs, err = sc.listJobs(ctx)
	case TableJobApplications:
		snap.JobApplications, err = sc.listJobApplications(ctx)
	case TableAppointments:
		snap.Appointments, err = sc.listAppointments(ctx)
	default:
		return invalid("unknown table %q", t)
	}
	return err
}

func validateTable(t Table, snap models.Snapshot) error {
	switch t {
	case TableUsers:
		for _, u := range snap.Users {
			if err := validateKey("user_id", u.UserID); err != nil {
				return err
			}
			if err := validateUser(u); err != nil {
				return fmt.Errorf("user %d: %w", u.UserID, err)
			}
		}
	case TableCaregivers:
		for _, c := range snap.Caregivers {
			if err := validateCaregiver(c); err != nil {
				return fmt.Errorf("caregiver %d: %w", c.CaregiverUserID, err)
			}
		}
	case TableMembers:
		for _, m := range snap.Members {
			if err := validateMember(m); err != nil {
				return err
			}
		}
	case TableAddresses:
		for _, a := range snap.Addresses {
			if err := validateAddress(a); err != nil {
				return err
			}
		}
	case TableJobs:
		for _, j := range snap.Jobs {
			if err := validateKey("job_id", j.JobID); err != nil {
				return err
			}
			if err := validateJob(j); err != nil {
				return fmt.Errorf("job %d: %w", j.JobID, err)
			}
		}
	case TableJobApplications:
		for _, a := range snap.JobApplications {
			if err := validateJobApplication(a); err != nil {
				return err
			}
		}
	case TableAppointments:
		for _, a := range snap.Appointments {
			if err := validateKey("appointment_id", a.AppointmentID); err != nil {
				return err
			}
			if err := validateAppointment(a); err != nil {
				return fmt.Errorf("appointment %d: %w", a.AppointmentID, err)
			}
		}
	default:
		return invalid("unknown table %q", t)
	}
	return nil
}

func (sc *scope) insertTable(ctx context.Context, t Table, snap models.Snapshot) error {
	columns, rows, err := TableRows(t, snap)
	if err != nil {
		return err
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t, strings.Join(columns, ", "), marks)
	for _, args := range rows {
		if _, err := sc.exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", t, err)
		}
	}
	return nil
}

// TableRows flattens the rows of t in snap into insert values, one slice per
// row in the order of the returned columns. Zero dates become today.
func TableRows(t Table, snap models.Snapshot) (columns []string, rows [][]any, err error) {
	split := func(cols string) []string { return strings.Split(cols, ", ") }

	switch t {
	case TableUsers:
		columns = split(userColumns)
		for _, u := range snap.Users {
			rows = append(rows, []any{u.UserID, u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password})
		}
	case TableCaregivers:
		columns = split(caregiverColumns)
		for _, c := range snap.Caregivers {
			rows = append(rows, []any{c.CaregiverUserID, c.Photo, c.Gender, c.CaregivingType, c.HourlyRate})
		}
	case TableMembers:
		columns = split(memberColumns)
		for _, m := range snap.Members {
			rows = append(rows, []any{m.MemberUserID, m.HouseRules, m.DependentDescription})
		}
	case TableAddresses:
		columns = split(addressColumns)
		for _, a := range snap.Addresses {
			rows = append(rows, []any{a.MemberUserID, a.HouseNumber, a.Street, a.Town})
		}
	case TableJobs:
		columns = split(jobColumns)
		for _, j := range snap.Jobs {
			if j.DatePosted.IsZero() {
				j.DatePosted = models.Today()
			}
			rows = append(rows, []any{j.JobID, j.MemberUserID, j.RequiredCaregivingType, j.OtherRequirements, j.DatePosted})
		}
	case TableJobApplications:
		columns = split(jobApplicationColumns)
		for _, a := range snap.JobApplications {
			if a.DateApplied.IsZero() {
				a.DateApplied = models.Today()
			}
			rows = append(rows, []any{a.CaregiverUserID, a.JobID, a.DateApplied})
		}
	case TableAppointments:
		columns = split(appointmentColumns)
		for _, a := range snap.Appointments {
			rows = append(rows, []any{a.AppointmentID, a.CaregiverUserID, a.MemberUserID, a.AppointmentDate, a.AppointmentTime, a.WorkHours, a.Status})
		}
	default:
		return nil, nil, invalid("unknown table %q", t)
	}
	return columns, rows, nil
}

// serialColumns maps tables with surrogate keys to their key column.
var serialColumns = map[Table]string{
	TableUsers:        "user_id",
	TableJobs:         "job_id",
	TableAppointments: "appointment_id",
}

// resyncSequence moves a postgres serial sequence past the largest key after
// explicit-key inserts. SQLite AUTOINCREMENT tracks this itself.
func (sc *scope) resyncSequence(ctx context.Context, t Table) error {
	col, ok := serialColumns[t]
	if !ok || sc.dialect != db.Postgres {
		return nil
	}
	_, err := sc.exec(ctx, fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE((SELECT MAX(%s) FROM %s), 0) + 1, false)",
		t, col, col, t,
	))
	if err != nil {
		return fmt.Errorf("resync %s sequence: %w", t, err)
	}
	return nil
}
