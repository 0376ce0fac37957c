// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"math"
	"slices"
	"strings"

	"github.com/danielhkuo/caregivers/models"
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validateKey(name string, id int64) error {
	if id <= 0 {
		return invalid("%s must be a positive id", name)
	}
	return nil
}

func validateUser(u models.User) error {
	if blank(u.Email) {
		return invalid("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return invalid("email %q is not an email address", u.Email)
	}
	if blank(u.GivenName) {
		return invalid("given_name is required")
	}
	if blank(u.Surname) {
		return invalid("surname is required")
	}
	if u.Password == "" {
		return invalid("password is required")
	}
	return nil
}

func validateCaregiver(c models.Caregiver) error {
	if err := validateKey("caregiver_user_id", c.CaregiverUserID); err != nil {
		return err
	}
	if blank(c.CaregivingType) {
		return invalid("caregiving_type is required")
	}
	if !finite(c.HourlyRate) || c.HourlyRate < 0 {
		return invalid("hourly_rate must be a non-negative number")
	}
	return nil
}

func validateMember(m models.Member) error {
	return validateKey("member_user_id", m.MemberUserID)
}

func validateAddress(a models.Address) error {
	return validateKey("member_user_id", a.MemberUserID)
}

func validateJob(j models.Job) error {
	if err := validateKey("member_user_id", j.MemberUserID); err != nil {
		return err
	}
	if blank(j.RequiredCaregivingType) {
		return invalid("required_caregiving_type is required")
	}
	return nil
}

func validateJobApplication(a models.JobApplication) error {
	if err := validateKey("caregiver_user_id", a.CaregiverUserID); err != nil {
		return err
	}
	return validateKey("job_id", a.JobID)
}

func validateAppointment(a models.Appointment) error {
	if err := validateKey("caregiver_user_id", a.CaregiverUserID); err != nil {
		return err
	}
	if err := validateKey("member_user_id", a.MemberUserID); err != nil {
		return err
	}
	if a.AppointmentDate.IsZero() {
		return invalid("appointment_date is required")
	}
	if !finite(a.WorkHours) || a.WorkHours <= 0 {
		return invalid("work_hours must be greater than zero")
	}
	return validateStatus(a.Status)
}

func validateStatus(status string) error {
	if !slices.Contains(models.AppointmentStatuses, status) {
		return invalid("status must be one of: %s", strings.Join(models.AppointmentStatuses, ", "))
	}
	return nil
}
