// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data layer for the caregivers schema.

# Transactions

Every exported method opens one transaction, runs its statements and
commits. Any error, including a panic, rolls the transaction back, so a
failed cascade leaves no partial delete behind.

	st := store.New(conn, db.SQLite)
	user, err := st.CreateUser(ctx, models.User{...})

# Cascades

Deletes are declared as ordered step lists and run by one executor:

  - DeleteJob: job_application, job
  - DeleteMember: job_application, job, appointment, address, member
  - DeleteCaregiver: job_application, appointment, caregiver
  - PurgeUser: every dependent row, then users
  - DeleteUser: refuses while a caregiver or member row exists

Each delete reports rows removed per table.

# Errors

Failures wrap one of the sentinel kinds and can be tested with errors.Is:

	ErrValidation            input rejected before any statement ran
	ErrNotFound              key does not resolve to a row
	ErrAlreadyExists         duplicate primary key or email
	ErrReferentialIntegrity  write would orphan or reference a missing row
	ErrTransientConnection   database unreachable

# Bulk Operations

ReadAll and ReplaceAll move whole snapshots; ReadTable and ReplaceTable do
the same for one table. Replacement keeps primary keys.
*/
package store
