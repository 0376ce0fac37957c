// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the caregivers API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

Every route except /health and / is wrapped in middleware.WithLogging.

# Endpoints

Health:

	GET /health - 200 OK, or 503 when the database does not answer

Entities (same five routes each):

	GET    /users          - List
	POST   /users          - Create
	GET    /users/{id}     - Get
	PUT    /users/{id}     - Update
	DELETE /users/{id}     - Delete (?cascade=true removes dependents)

	/caregivers, /members, /addresses, /jobs, /appointments follow the same shape.
	/job-applications is keyed by /job-applications/{caregiver_id}/{job_id}.

Reports (read-only; status defaults to accepted):

	GET /reports/applicants
	GET /reports/hours?status=
	GET /reports/average-rate?status=
	GET /reports/above-average?status=
	GET /reports/total-cost?status=
	GET /reports/job-applications
	GET /reports/jobs?q=
	GET /reports/members?type=&city=&rule=
	GET /reports/work-hours?type=

Bulk:

	GET /snapshot          PUT /snapshot
	GET /snapshot/{table}  PUT /snapshot/{table}
*/
package router
