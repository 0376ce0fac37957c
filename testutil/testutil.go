// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/caregivers/cliparse"
	"github.com/danielhkuo/caregivers/db"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

// SetupTestDB creates a fresh SQLite database with the full schema under
// the test's temp dir. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "caregivers.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a store.
func SetupTestStore(t *testing.T) (*sql.DB, *store.Store) {
	t.Helper()
	conn := SetupTestDB(t)
	return conn, store.New(conn, db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: string(db.SQLite),
	}
}

// CreateTestUser inserts a user and returns its user_id
func CreateTestUser(t *testing.T, conn *sql.DB, givenName, surname, email string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO users (email, given_name, surname, city, password)
		VALUES (?, ?, ?, 'Astana', 'test-password')
		RETURNING user_id
	`, email, givenName, surname).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestCaregiver creates a user with a caregiver profile and returns the id
func CreateTestCaregiver(t *testing.T, conn *sql.DB, givenName, surname, caregivingType string, hourlyRate float64) int64 {
	t.Helper()

	id := CreateTestUser(t, conn, givenName, surname, givenName+"."+surname+"@example.com")
	_, err := conn.Exec(`
		INSERT INTO caregiver (caregiver_user_id, caregiving_type, hourly_rate)
		VALUES (?, ?, ?)
	`, id, caregivingType, hourlyRate)
	if err != nil {
		t.Fatalf("Failed to create test caregiver: %v", err)
	}

	return id
}

// CreateTestMember creates a user with a member profile and an address
func CreateTestMember(t *testing.T, conn *sql.DB, givenName, surname, street string) int64 {
	t.Helper()

	id := CreateTestUser(t, conn, givenName, surname, givenName+"."+surname+"@example.com")
	_, err := conn.Exec(`
		INSERT INTO member (member_user_id, house_rules) VALUES (?, 'No pets.')
	`, id)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO address (member_user_id, house_number, street, town) VALUES (?, '1', ?, 'Astana')
	`, id, street)
	if err != nil {
		t.Fatalf("Failed to create test address: %v", err)
	}

	return id
}

// CreateTestJob posts a job for a member and returns the job_id
func CreateTestJob(t *testing.T, conn *sql.DB, memberID int64, caregivingType string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO job (member_user_id, required_caregiving_type, other_requirements, date_posted)
		VALUES (?, ?, 'soft-spoken', ?)
		RETURNING job_id
	`, memberID, caregivingType, models.Today()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return id
}

// CreateTestApplication records a caregiver applying to a job
func CreateTestApplication(t *testing.T, conn *sql.DB, caregiverID, jobID int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO job_application (caregiver_user_id, job_id, date_applied) VALUES (?, ?, ?)
	`, caregiverID, jobID, models.Today())
	if err != nil {
		t.Fatalf("Failed to create test application: %v", err)
	}
}

// CreateTestAppointment books an appointment and returns its id
func CreateTestAppointment(t *testing.T, conn *sql.DB, caregiverID, memberID int64, workHours float64, status string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO appointment (caregiver_user_id, member_user_id, appointment_date, appointment_time, work_hours, status)
		VALUES (?, ?, '2025-01-09', '10:00:00', ?, ?)
		RETURNING appointment_id
	`, caregiverID, memberID, workHours, status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test appointment: %v", err)
	}

	return id
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
