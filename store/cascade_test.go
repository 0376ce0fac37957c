// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/caregivers/models"
)

func deletedFrom(deleted []models.DeletedRows, table Table) int64 {
	for _, d := range deleted {
		if d.Table == string(table) {
			return d.Rows
		}
	}
	return -1
}

func TestDeleteJobRemovesApplicationsFirst(t *testing.T) {
	st := openTempStore(t)
	f := seed(t, st)

	deleted, err := st.DeleteJob(context.Background(), f.job)
	if err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if len(deleted) != 2 || deleted[0].Table != "job_application" || deleted[1].Table != "job" {
		t.Errorf("Unexpected step order: %+v", deleted)
	}
	if deletedFrom(deleted, TableJobApplications) != 1 || deletedFrom(deleted, TableJobs) != 1 {
		t.Errorf("Unexpected counts: %+v", deleted)
	}
	if n := countRows(t, st, "job_application"); n != 0 {
		t.Errorf("Expected no applications left, got %d", n)
	}
}

func TestDeleteMemberCascade(t *testing.T) {
	st := openTempStore(t)
	f := seed(t, st)

	deleted, err := st.DeleteMember(context.Background(), f.member)
	if err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	order := []Table{TableJobApplications, TableJobs, TableAppointments, TableAddresses, TableMembers}
	if len(deleted) != len(order) {
		t.Fatalf("Expected %d steps, got %+v", len(order), deleted)
	}
	for i, table := range order {
		if deleted[i].Table != string(table) || deleted[i].Rows != 1 {
			t.Errorf("step %d: expected 1 row from %s, got %+v", i, table, deleted[i])
		}
	}

	for _, table := range []string{"job_application", "job", "appointment", "address", "member"} {
		if n := countRows(t, st, table); n != 0 {
			t.Errorf("Expected %s empty, got %d", table, n)
		}
	}
	if n := countRows(t, st, "users"); n != 2 {
		t.Errorf("Expected users kept, got %d", n)
	}
}

func TestDeleteCaregiverCascade(t *testing.T) {
	st := openTempStore(t)
	f := seed(t, st)

	if _, err := st.DeleteCaregiver(context.Background(), f.caregiver); err != nil {
		t.Fatalf("DeleteCaregiver: %v", err)
	}
	if n := countRows(t, st, "appointment"); n != 0 {
		t.Errorf("Expected appointments removed, got %d", n)
	}
	if n := countRows(t, st, "job"); n != 1 {
		t.Errorf("Expected job kept, got %d", n)
	}
}

func TestDeleteUserRestrict(t *testing.T) {
	st := openTempStore(t)
	ctx := context.Background()
	f := seed(t, st)

	_, err := st.DeleteUser(ctx, f.member)
	if !errors.Is(err, ErrReferentialIntegrity) {
		t.Fatalf("Expected ErrReferentialIntegrity, got %v", err)
	}
	if _, err := st.GetUser(ctx, f.member); err != nil {
		t.Errorf("Expected user intact, got %v", err)
	}
	if n := countRows(t, st, "member"); n != 1 {
		t.Errorf("Expected member intact, got %d", n)
	}
}

func TestPurgeUser(t *testing.T) {
	st := openTempStore(t)
	ctx := context.Background()
	f := seed(t, st)

	deleted, err := st.PurgeUser(ctx, f.member)
	if err != nil {
		t.Fatalf("PurgeUser: %v", err)
	}
	if deletedFrom(deleted, TableUsers) != 1 || deletedFrom(deleted, TableJobs) != 1 {
		t.Errorf("Unexpected counts: %+v", deleted)
	}
	if _, err := st.GetUser(ctx, f.member); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected purged user gone, got %v", err)
	}
	if _, err := st.GetCaregiver(ctx, f.caregiver); err != nil {
		t.Errorf("Expected caregiver kept, got %v", err)
	}
}

func TestFailedCascadeRollsBack(t *testing.T) {
	st := openTempStore(t)
	f := seed(t, st)

	// Abort on the address step, after applications and jobs were deleted.
	_, err := st.db.Exec(`CREATE TRIGGER fail_address BEFORE DELETE ON address BEGIN SELECT RAISE(ABORT, 'boom'); END;`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if _, err := st.DeleteMember(context.Background(), f.member); err == nil {
		t.Fatal("Expected DeleteMember to fail")
	}

	for _, table := range []string{"job_application", "job", "appointment", "address", "member"} {
		if n := countRows(t, st, table); n != 1 {
			t.Errorf("Expected %s rolled back to 1 row, got %d", table, n)
		}
	}
}

func TestMergeDeleted(t *testing.T) {
	got := mergeDeleted(
		[]models.DeletedRows{{Table: "job_application", Rows: 1}, {Table: "job", Rows: 1}},
		[]models.DeletedRows{{Table: "job_application", Rows: 2}, {Table: "job", Rows: 1}, {Table: "member", Rows: 1}},
	)
	want := []models.DeletedRows{{Table: "job_application", Rows: 3}, {Table: "job", Rows: 2}, {Table: "member", Rows: 1}}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestParseTable(t *testing.T) {
	if tbl, err := ParseTable(" Job_Application "); err != nil || tbl != TableJobApplications {
		t.Errorf("Expected job_application, got %q, %v", tbl, err)
	}
	if _, err := ParseTable("payments"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
