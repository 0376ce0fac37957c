// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/caregivers/models"
)

// Table names one of the seven tables.
type Table string

const (
	TableUsers           Table = "users"
	TableCaregivers      Table = "caregiver"
	TableMembers         Table = "member"
	TableAddresses       Table = "address"
	TableJobs            Table = "job"
	TableJobApplications Table = "job_application"
	TableAppointments    Table = "appointment"
)

// Tables lists every table with parents before children.
var Tables = []Table{
	TableUsers,
	TableCaregivers,
	TableMembers,
	TableAddresses,
	TableJobs,
	TableJobApplications,
	TableAppointments,
}

// ParseTable resolves a table name.
func ParseTable(name string) (Table, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tables {
		if string(t) == name {
			return t, nil
		}
	}
	return "", invalid("unknown table %q", name)
}

// cascadeStep deletes the rows of table matching where. Every ? in where
// binds the root key.
type cascadeStep struct {
	table Table
	where string
}

// cascadePlan is an ordered delete for one root row. Rows matching any
// restrict step block the delete. The last step removes the root row.
type cascadePlan struct {
	name     string
	restrict []cascadeStep
	steps    []cascadeStep
}

var (
	deleteUserPlan = cascadePlan{
		name: "user",
		restrict: []cascadeStep{
			{TableCaregivers, "caregiver_user_id = ?"},
			{TableMembers, "member_user_id = ?"},
		},
		steps: []cascadeStep{
			{TableUsers, "user_id = ?"},
		},
	}

	purgeUserPlan = cascadePlan{
		name: "user",
		steps: []cascadeStep{
			{TableJobApplications, "caregiver_user_id = ? OR job_id IN (SELECT job_id FROM job WHERE member_user_id = ?)"},
			{TableJobs, "member_user_id = ?"},
			{TableAppointments, "caregiver_user_id = ? OR member_user_id = ?"},
			{TableAddresses, "member_user_id = ?"},
			{TableCaregivers, "caregiver_user_id = ?"},
			{TableMembers, "member_user_id = ?"},
			{TableUsers, "user_id = ?"},
		},
	}

	deleteCaregiverPlan = cascadePlan{
		name: "caregiver",
		steps: []cascadeStep{
			{TableJobApplications, "caregiver_user_id = ?"},
			{TableAppointments, "caregiver_user_id = ?"},
			{TableCaregivers, "caregiver_user_id = ?"},
		},
	}

	deleteMemberPlan = cascadePlan{
		name: "member",
		steps: []cascadeStep{
			{TableJobApplications, "job_id IN (SELECT job_id FROM job WHERE member_user_id = ?)"},
			{TableJobs, "member_user_id = ?"},
			{TableAppointments, "member_user_id = ?"},
			{TableAddresses, "member_user_id = ?"},
			{TableMembers, "member_user_id = ?"},
		},
	}

	deleteAddressPlan = cascadePlan{
		name: "address",
		steps: []cascadeStep{
			{TableAddresses, "member_user_id = ?"},
		},
	}

	deleteJobPlan = cascadePlan{
		name: "job",
		steps: []cascadeStep{
			{TableJobApplications, "job_id = ?"},
			{TableJobs, "job_id = ?"},
		},
	}

	deleteAppointmentPlan = cascadePlan{
		name: "appointment",
		steps: []cascadeStep{
			{TableAppointments, "appointment_id = ?"},
		},
	}
)

func (st cascadeStep) args(key int64) []any {
	n := strings.Count(st.where, "?")
	args := make([]any, n)
	for i := range args {
		args[i] = key
	}
	return args
}

// cascade runs plan for key inside the current transaction. A missing root
// row is ErrNotFound; the caller's transaction then rolls back every step.
func (sc *scope) cascade(ctx context.Context, plan cascadePlan, key int64) ([]models.DeletedRows, error) {
	for _, guard := range plan.restrict {
		var n int64
		err := sc.queryRow(ctx, []any{&n},
			fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", guard.table, guard.where),
			guard.args(key)...,
		)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: %s %d is still referenced by %s", ErrReferentialIntegrity, plan.name, key, guard.table)
		}
	}

	deleted := make([]models.DeletedRows, 0, len(plan.steps))
	for i, step := range plan.steps {
		n, err := sc.execCount(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE %s", step.table, step.where),
			step.args(key)...,
		)
		if err != nil {
			return nil, fmt.Errorf("delete from %s: %w", step.table, err)
		}
		if i == len(plan.steps)-1 && n == 0 {
			return nil, fmt.Errorf("%s %d: %w", plan.name, key, ErrNotFound)
		}
		deleted = append(deleted, models.DeletedRows{Table: string(step.table), Rows: n})
	}
	return deleted, nil
}

// runCascade runs plan for key in its own transaction.
func (s *Store) runCascade(ctx context.Context, plan cascadePlan, key int64) ([]models.DeletedRows, error) {
	if err := validateKey(plan.name+" id", key); err != nil {
		return nil, err
	}

	var deleted []models.DeletedRows
	err := s.inTx(ctx, func(sc *scope) error {
		var err error
		deleted, err = sc.cascade(ctx, plan, key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", plan.name, err)
	}
	return deleted, nil
}

// mergeDeleted sums per-table counts, keeping first-seen table order.
func mergeDeleted(into []models.DeletedRows, more []models.DeletedRows) []models.DeletedRows {
	for _, d := range more {
		found := false
		for i := range into {
			if into[i].Table == d.Table {
				into[i].Rows += d.Rows
				found = true
				break
			}
		}
		if !found {
			into = append(into, d)
		}
	}
	return into
}
