// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL URL or SQLite file path (required)
  - DatabaseType: postgres or sqlite

# CLI Flags

	-p  Server port
	-d  Database URL
	-t  Database type

# Environment Variables

Defaults come from the environment, parsed with caarlos0/env:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t

LoadDotEnv reads a .env file first; values already in the environment
are kept. CLI flags take precedence over both.

# Database Type

When DatabaseType is empty it is inferred from the URL: postgres:// and
postgresql:// select postgres, anything else is a SQLite path.

# Example

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg.Dialect(), cfg.DatabaseURL)
*/
package cliparse
