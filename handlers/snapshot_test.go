// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewSnapshotHandler(st)

	caregiverID := testutil.CreateTestCaregiver(t, conn, "Aigerim", "Bekova", "babysitter", 20)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")
	jobID := testutil.CreateTestJob(t, conn, memberID, "babysitter")
	testutil.CreateTestApplication(t, conn, caregiverID, jobID)
	testutil.CreateTestAppointment(t, conn, caregiverID, memberID, 2, models.StatusAccepted)

	w := httptest.NewRecorder()
	handler.GetAll(w, httptest.NewRequest("GET", "/snapshot", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var snap models.Snapshot
	testutil.AssertJSON(t, w, &snap)
	if len(snap.Users) != 2 || len(snap.Appointments) != 1 {
		t.Fatalf("Unexpected snapshot: %+v", snap)
	}
	if snap.Users[0].Password == "" {
		t.Error("Snapshots must keep passwords")
	}

	// Drop the appointment and restore everything else.
	snap.Appointments = nil
	w = httptest.NewRecorder()
	handler.ReplaceAll(w, testutil.MakeRequest("PUT", "/snapshot", snap, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if n := testutil.CountRows(t, conn, "appointment"); n != 0 {
		t.Errorf("Expected no appointments, got %d", n)
	}
	if n := testutil.CountRows(t, conn, "job_application"); n != 1 {
		t.Errorf("Expected 1 application, got %d", n)
	}
}

func TestSnapshotReplaceAllRejectsInvalid(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewSnapshotHandler(st)
	testutil.CreateTestUser(t, conn, "Keep", "Me", "keep@example.com")

	snap := models.Snapshot{
		Users: []models.User{{UserID: 1, Email: "missing-fields@example.com"}},
	}
	w := httptest.NewRecorder()
	handler.ReplaceAll(w, testutil.MakeRequest("PUT", "/snapshot", snap, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	if n := testutil.CountRows(t, conn, "users"); n != 1 {
		t.Errorf("Rejected snapshot must not touch the database, got %d users", n)
	}
}

func TestSnapshotTable(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewSnapshotHandler(st)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")
	testutil.CreateTestJob(t, conn, memberID, "babysitter")

	t.Run("unknown table", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/snapshot/payments", nil)
		req.SetPathValue("table", "payments")
		w := httptest.NewRecorder()
		handler.GetTable(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("read one table", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/snapshot/job", nil)
		req.SetPathValue("table", "job")
		w := httptest.NewRecorder()
		handler.GetTable(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var snap models.Snapshot
		testutil.AssertJSON(t, w, &snap)
		if len(snap.Jobs) != 1 || snap.Users != nil {
			t.Errorf("Expected only jobs, got %+v", snap)
		}
	})

	t.Run("replace referenced table", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/snapshot/member", models.Snapshot{Members: []models.Member{}}, nil)
		req.SetPathValue("table", "member")
		w := httptest.NewRecorder()
		handler.ReplaceTable(w, req)
		testutil.AssertStatus(t, w, http.StatusConflict)

		if n := testutil.CountRows(t, conn, "member"); n != 1 {
			t.Errorf("Failed replace must roll back, got %d members", n)
		}
	})

	t.Run("replace leaf table", func(t *testing.T) {
		jobs := models.Snapshot{Jobs: []models.Job{
			{JobID: 10, MemberUserID: memberID, RequiredCaregivingType: "elderly care"},
		}}
		req := testutil.MakeRequest("PUT", "/snapshot/job", jobs, nil)
		req.SetPathValue("table", "job")
		w := httptest.NewRecorder()
		handler.ReplaceTable(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var snap models.Snapshot
		testutil.AssertJSON(t, w, &snap)
		if len(snap.Jobs) != 1 || snap.Jobs[0].JobID != 10 {
			t.Errorf("Unexpected jobs: %+v", snap.Jobs)
		}
	})
}
