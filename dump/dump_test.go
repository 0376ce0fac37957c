// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dump

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
	"github.com/danielhkuo/caregivers/testutil"
)

func strPtr(s string) *string { return &s }

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Users: []models.User{
			{UserID: 1, Email: "aigerim@example.com", GivenName: "Aigerim", Surname: "Bekova", City: strPtr("Astana"), Password: "secret"},
			{UserID: 2, Email: "amina@example.com", GivenName: "Amina", Surname: "O'Neil", Password: "secret"},
		},
		Caregivers: []models.Caregiver{
			{CaregiverUserID: 1, CaregivingType: "babysitter", HourlyRate: 12.5},
		},
		Members: []models.Member{
			{MemberUserID: 2, HouseRules: strPtr("No pets.")},
		},
		Addresses: []models.Address{
			{MemberUserID: 2, HouseNumber: strPtr("1"), Street: strPtr("Kabanbay Batyr"), Town: strPtr("Astana")},
		},
		Jobs: []models.Job{
			{JobID: 1, MemberUserID: 2, RequiredCaregivingType: "babysitter", DatePosted: models.NewDate(2025, time.January, 2)},
		},
		JobApplications: []models.JobApplication{
			{CaregiverUserID: 1, JobID: 1, DateApplied: models.NewDate(2025, time.January, 3)},
		},
		Appointments: []models.Appointment{
			{
				AppointmentID: 1, CaregiverUserID: 1, MemberUserID: 2,
				AppointmentDate: models.NewDate(2025, time.January, 9), AppointmentTime: models.NewClock(10, 0, 0),
				WorkHours: 4, Status: models.StatusAccepted,
			},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"payments": []}`))
	if err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLiteral(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil string pointer", (*string)(nil), "NULL"},
		{"string pointer", strPtr("No pets."), "'No pets.'"},
		{"quote escaped", "O'Neil", "'O''Neil'"},
		{"integer", int64(42), "42"},
		{"float", 12.5, "12.5"},
		{"whole float", 20.0, "20"},
		{"date", models.NewDate(2025, time.January, 9), "'2025-01-09'"},
		{"clock", models.NewClock(10, 0, 0), "'10:00:00'"},
		{"nil", nil, "NULL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Literal(tc.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}

	if _, err := Literal(struct{}{}); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestWriteSQLOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSQL(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("WriteSQL failed: %v", err)
	}
	script := buf.String()

	before := func(a, b string) {
		t.Helper()
		i, j := strings.Index(script, a), strings.Index(script, b)
		if i < 0 || j < 0 || i > j {
			t.Errorf("Expected %q before %q in:\n%s", a, b, script)
		}
	}
	before("DELETE FROM appointment;", "DELETE FROM users;")
	before("DELETE FROM users;", "INSERT INTO users")
	before("INSERT INTO users", "INSERT INTO caregiver")
	before("INSERT INTO job ", "INSERT INTO job_application")
	before("INSERT INTO job_application", "INSERT INTO appointment")

	if !strings.Contains(script, "'O''Neil'") {
		t.Error("Expected escaped quote in script")
	}
	if !strings.Contains(script, "VALUES (2, 'amina@example.com', 'Amina', 'O''Neil', NULL, NULL, NULL, 'secret');") {
		t.Errorf("Unexpected users insert:\n%s", script)
	}
}

// TestWriteSQLLoads runs the generated script against a fresh database.
func TestWriteSQLLoads(t *testing.T) {
	conn, st := testutil.SetupTestStore(t)
	testutil.CreateTestUser(t, conn, "Old", "Row", "old@example.com")

	var buf bytes.Buffer
	want := sampleSnapshot()
	if err := WriteSQL(&buf, want); err != nil {
		t.Fatalf("WriteSQL failed: %v", err)
	}

	for _, stmt := range strings.Split(buf.String(), ";\n") {
		lines := []string{}
		for _, line := range strings.Split(stmt, "\n") {
			if line != "" && !strings.HasPrefix(line, "--") {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		if _, err := conn.Exec(strings.Join(lines, "\n")); err != nil {
			t.Fatalf("Statement failed: %v\n%s", err, stmt)
		}
	}

	got, err := st.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Loaded snapshot mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestWriteSQLSingleTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSQL(&buf, sampleSnapshot(), store.TableJobs); err != nil {
		t.Fatalf("WriteSQL failed: %v", err)
	}
	script := buf.String()

	if strings.Count(script, "DELETE FROM") != 1 || !strings.Contains(script, "DELETE FROM job;") {
		t.Errorf("Expected only the job table to be cleared:\n%s", script)
	}
	if strings.Contains(script, "INSERT INTO users") {
		t.Errorf("Unexpected users insert:\n%s", script)
	}
	if !strings.Contains(script, "'2025-01-02'") {
		t.Errorf("Expected date_posted literal:\n%s", script)
	}
}
