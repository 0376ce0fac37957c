// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the caregivers API.

# Handler Types

Each handler is a struct wrapping a *store.Store:

  - UserHandler: user accounts (passwords never leave the API)
  - CaregiverHandler, MemberHandler, AddressHandler: user profiles
  - JobHandler, JobApplicationHandler: job postings and applications
  - AppointmentHandler: bookings between caregivers and members
  - ReportHandler: read-only reports and searches
  - SnapshotHandler: bulk read-all and replace-all

Handlers are created via constructor functions:

	jobHandler := handlers.NewJobHandler(st)

# Listings

List endpoints return joined listing rows (names and contact details next
to the entity). Pass ?raw=true for the plain table rows.

# Deletes

Deletes cascade in a fixed order inside one transaction and answer with
per-table counts:

	DELETE /members/7
	{"deleted":[{"table":"job_application","rows":2},{"table":"job","rows":1},...]}

DELETE /users/{id} refuses a user that is still a caregiver or member
unless ?cascade=true is given.

# Errors

Store errors map to statuses in one place (errors.go):

	ErrValidation            400
	ErrNotFound              404
	ErrAlreadyExists         409
	ErrReferentialIntegrity  409
	ErrTransientConnection   503
	anything else            500 (message is generic, details are logged)
*/
package handlers
