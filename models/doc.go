// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, listing, report and response types.

# Domain Types

One struct per table, fields in column order:

  - User: user_id, email, names, optional contact fields, password
  - Caregiver: caregiver_user_id, photo, gender, caregiving_type, hourly_rate
  - Member: member_user_id, house_rules, dependent_description
  - Address: member_user_id, house_number, street, town
  - Job: job_id, member_user_id, required_caregiving_type, other_requirements, date_posted
  - JobApplication: caregiver_user_id, job_id, date_applied
  - Appointment: appointment_id, caregiver and member ids, date, time, work_hours, status

Optional columns are *string. A nil pointer is stored as NULL and is
distinct from an empty string.

# Dates and Times

Date (YYYY-MM-DD) and Clock (HH:MM:SS) implement sql.Scanner,
driver.Valuer and encoding.TextMarshaler, so they round-trip through
both drivers and JSON:

	d, _ := models.ParseDate("2025-03-14")
	c, _ := models.ParseClock("09:30")

# Listings and Reports

Listing types embed the domain row and add joined user names. Report types
carry aggregate results such as CaregiverCost.TotalCost.

# Constants

Appointment status values:

	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
*/
package models
