// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the caregivers API server.

The caregivers service keeps the records of an online caregiving
marketplace: users, their caregiver and member profiles, member addresses,
job postings, job applications and appointments. Every operation runs in
one database transaction; deletes cascade in a fixed order.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3318 -d caregivers.db -t sqlite

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file path

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: inferred from the URL)

# Architecture

  - store: transactional data layer, cascades, reports, bulk operations
  - handlers: HTTP request handlers per table plus reports and snapshots
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request logging, JSON helpers
  - models: Entity, listing and report types
  - db: Connections, dialects and schema creation
  - dump: Snapshot files and SQL insert scripts
  - cliparse: Configuration parsing

The admin CLI lives in cmd/caregivers-admin.
*/
package main
