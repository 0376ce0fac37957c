// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/testutil"
)

func TestCaregiverHandler(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewCaregiverHandler(st)
	userID := testutil.CreateTestUser(t, conn, "Aigerim", "Bekova", "aigerim@example.com")

	t.Run("create", func(t *testing.T) {
		body := models.Caregiver{CaregiverUserID: userID, CaregivingType: "babysitter", HourlyRate: 20}
		w := httptest.NewRecorder()
		handler.Create(w, testutil.MakeRequest("POST", "/caregivers", body, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("create for missing user", func(t *testing.T) {
		body := models.Caregiver{CaregiverUserID: 9999, CaregivingType: "babysitter", HourlyRate: 20}
		w := httptest.NewRecorder()
		handler.Create(w, testutil.MakeRequest("POST", "/caregivers", body, nil))
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("negative rate", func(t *testing.T) {
		body := models.Caregiver{CaregiverUserID: userID, CaregivingType: "babysitter", HourlyRate: -1}
		w := httptest.NewRecorder()
		handler.Create(w, testutil.MakeRequest("POST", "/caregivers", body, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("list joins user", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/caregivers", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var listings []models.CaregiverListing
		testutil.AssertJSON(t, w, &listings)
		if len(listings) != 1 || listings[0].GivenName != "Aigerim" {
			t.Errorf("Unexpected listings: %+v", listings)
		}
	})

	t.Run("update", func(t *testing.T) {
		body := models.Caregiver{CaregivingType: "elderly care", HourlyRate: 25}
		req := testutil.MakeRequest("PUT", fmt.Sprintf("/caregivers/%d", userID), body, nil)
		req.SetPathValue("id", fmt.Sprint(userID))
		w := httptest.NewRecorder()
		handler.Update(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var c models.Caregiver
		testutil.AssertJSON(t, w, &c)
		if c.CaregiverUserID != userID || c.HourlyRate != 25 {
			t.Errorf("Unexpected caregiver: %+v", c)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/caregivers/%d", userID), nil)
		req.SetPathValue("id", fmt.Sprint(userID))
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		if n := testutil.CountRows(t, conn, "users"); n != 1 {
			t.Errorf("Deleting a caregiver must keep the user, got %d users", n)
		}
	})
}

func TestMemberDeleteCascades(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewMemberHandler(st)

	caregiverID := testutil.CreateTestCaregiver(t, conn, "Aigerim", "Bekova", "babysitter", 20)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")
	jobID := testutil.CreateTestJob(t, conn, memberID, "babysitter")
	testutil.CreateTestApplication(t, conn, caregiverID, jobID)
	testutil.CreateTestAppointment(t, conn, caregiverID, memberID, 3, models.StatusAccepted)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/members/%d", memberID), nil)
	req.SetPathValue("id", fmt.Sprint(memberID))
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.DeleteResponse
	testutil.AssertJSON(t, w, &resp)

	want := []models.DeletedRows{
		{Table: "job_application", Rows: 1},
		{Table: "job", Rows: 1},
		{Table: "appointment", Rows: 1},
		{Table: "address", Rows: 1},
		{Table: "member", Rows: 1},
	}
	if len(resp.Deleted) != len(want) {
		t.Fatalf("Expected %d steps, got %+v", len(want), resp.Deleted)
	}
	for i := range want {
		if resp.Deleted[i] != want[i] {
			t.Errorf("Step %d: expected %+v, got %+v", i, want[i], resp.Deleted[i])
		}
	}
	if n := testutil.CountRows(t, conn, "caregiver"); n != 1 {
		t.Errorf("Caregiver must survive, got %d", n)
	}
}

func TestAddressHandler(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewAddressHandler(st)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")

	req := httptest.NewRequest("GET", fmt.Sprintf("/addresses/%d", memberID), nil)
	req.SetPathValue("id", fmt.Sprint(memberID))
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var a models.Address
	testutil.AssertJSON(t, w, &a)
	if a.Street == nil || *a.Street != "Kabanbay Batyr" {
		t.Errorf("Unexpected address: %+v", a)
	}

	// A second address for the same member collides on the key.
	w = httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/addresses", models.Address{MemberUserID: memberID}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/addresses?raw=true", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var raw []models.Address
	testutil.AssertJSON(t, w, &raw)
	if len(raw) != 1 {
		t.Errorf("Expected 1 address, got %d", len(raw))
	}
}

func TestJobHandler(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewJobHandler(st)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")

	var jobID int64
	t.Run("create defaults date", func(t *testing.T) {
		body := models.Job{MemberUserID: memberID, RequiredCaregivingType: "babysitter"}
		w := httptest.NewRecorder()
		handler.Create(w, testutil.MakeRequest("POST", "/jobs", body, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var job models.Job
		testutil.AssertJSON(t, w, &job)
		if job.JobID <= 0 {
			t.Fatalf("Expected generated job_id, got %d", job.JobID)
		}
		if job.DatePosted != models.Today() {
			t.Errorf("Expected date_posted today, got %s", job.DatePosted)
		}
		jobID = job.JobID
	})

	t.Run("missing type", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.MakeRequest("POST", "/jobs", models.Job{MemberUserID: memberID}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/jobs", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var listings []models.JobListing
		testutil.AssertJSON(t, w, &listings)
		if len(listings) != 1 || listings[0].Surname != "Aminova" {
			t.Errorf("Unexpected listings: %+v", listings)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/jobs/%d", jobID), nil)
		req.SetPathValue("id", fmt.Sprint(jobID))
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestJobApplicationHandler(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewJobApplicationHandler(st)

	caregiverID := testutil.CreateTestCaregiver(t, conn, "Aigerim", "Bekova", "babysitter", 20)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")
	jobID := testutil.CreateTestJob(t, conn, memberID, "babysitter")

	body := models.JobApplication{CaregiverUserID: caregiverID, JobID: jobID}
	w := httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/job-applications", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/job-applications", body, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	path := fmt.Sprintf("/job-applications/%d/%d", caregiverID, jobID)
	req := httptest.NewRequest("GET", path, nil)
	req.SetPathValue("caregiver_id", fmt.Sprint(caregiverID))
	req.SetPathValue("job_id", fmt.Sprint(jobID))
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/job-applications/x/1", nil)
	req.SetPathValue("caregiver_id", "x")
	req.SetPathValue("job_id", "1")
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/job-applications", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var listings []models.JobApplicationListing
	testutil.AssertJSON(t, w, &listings)
	if len(listings) != 1 || listings[0].CaregiverName != "Aigerim Bekova" {
		t.Errorf("Unexpected listings: %+v", listings)
	}

	req = httptest.NewRequest("DELETE", path, nil)
	req.SetPathValue("caregiver_id", fmt.Sprint(caregiverID))
	req.SetPathValue("job_id", fmt.Sprint(jobID))
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	if n := testutil.CountRows(t, conn, "job_application"); n != 0 {
		t.Errorf("Expected no applications, got %d", n)
	}
}

func TestAppointmentHandler(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	handler := NewAppointmentHandler(st)

	caregiverID := testutil.CreateTestCaregiver(t, conn, "Aigerim", "Bekova", "babysitter", 20)
	memberID := testutil.CreateTestMember(t, conn, "Amina", "Aminova", "Kabanbay Batyr")
	testutil.CreateTestAppointment(t, conn, caregiverID, memberID, 2, models.StatusAccepted)

	tests := []struct {
		name           string
		body           models.Appointment
		expectedStatus int
	}{
		{
			name: "pending by default",
			body: models.Appointment{
				CaregiverUserID: caregiverID,
				MemberUserID:    memberID,
				AppointmentDate: models.NewDate(2025, 2, 1),
				AppointmentTime: models.NewClock(9, 30, 0),
				WorkHours:       3,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "zero hours",
			body: models.Appointment{
				CaregiverUserID: caregiverID,
				MemberUserID:    memberID,
				AppointmentDate: models.NewDate(2025, 2, 1),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown status",
			body: models.Appointment{
				CaregiverUserID: caregiverID,
				MemberUserID:    memberID,
				AppointmentDate: models.NewDate(2025, 2, 1),
				WorkHours:       1,
				Status:          "maybe",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Create(w, testutil.MakeRequest("POST", "/appointments", tt.body, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var appt models.Appointment
				testutil.AssertJSON(t, w, &appt)
				if appt.Status != models.StatusPending {
					t.Errorf("Expected pending, got %s", appt.Status)
				}
			}
		})
	}

	t.Run("filter by status", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/appointments?status=accepted", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var listings []models.AppointmentListing
		testutil.AssertJSON(t, w, &listings)
		if len(listings) != 1 || listings[0].Status != models.StatusAccepted {
			t.Errorf("Unexpected listings: %+v", listings)
		}
	})

	t.Run("filter by unknown status", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/appointments?status=maybe", nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("delete missing", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/appointments/9999", nil)
		req.SetPathValue("id", "9999")
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
