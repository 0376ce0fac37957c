package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/caregivers/db"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE"`
}

// Dialect returns the parsed database type.
func (c Config) Dialect() db.Dialect {
	return db.Dialect(c.DatabaseType)
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags reads env defaults, then applies flags on top
func ParseFlags(args []string) (Config, error) {
	cfg, _, err := Parse("caregivers", args)
	return cfg, err
}

// Parse is ParseFlags for a named command. It also returns the arguments
// left after the flags, for subcommands.
func Parse(name string, args []string) (Config, []string, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// Flags win over env
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	dialect, err := ResolveDialect(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return Config{}, nil, err
	}
	cfg.DatabaseType = string(dialect)

	return cfg, fs.Args(), nil
}

// ResolveDialect parses an explicit type, or infers it from the URL scheme.
func ResolveDialect(dbType, url string) (db.Dialect, error) {
	if dbType != "" {
		return db.ParseDialect(dbType)
	}
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return db.Postgres, nil
	}
	return db.SQLite, nil
}
