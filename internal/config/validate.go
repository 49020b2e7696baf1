package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	minDebounce = 100 * time.Millisecond
	maxDebounce = 350 * time.Millisecond
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "text"}
	exportFormat = []string{"json", "yaml", "xlsx"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if !c.Translate.Disabled {
		if strings.TrimSpace(c.Translate.BaseURL) == "" {
			return fmt.Errorf("translate.base_url is required unless translate is disabled")
		}
		if c.Translate.Timeout <= 0 {
			return fmt.Errorf("translate.timeout must be > 0 (got %v)", c.Translate.Timeout)
		}
	}

	if c.Search.MinQueryLength < 1 {
		return fmt.Errorf("search.min_query_length must be >= 1 (got %d)", c.Search.MinQueryLength)
	}
	if c.Search.Debounce < minDebounce || c.Search.Debounce > maxDebounce {
		return fmt.Errorf("search.debounce must be in [%v, %v] (got %v)", minDebounce, maxDebounce, c.Search.Debounce)
	}

	if c.Quiz.MaxSessions < 1 {
		return fmt.Errorf("quiz.max_sessions must be >= 1 (got %d)", c.Quiz.MaxSessions)
	}

	if c.Backup.Enabled {
		if c.Backup.Interval < time.Minute {
			return fmt.Errorf("backup.interval must be >= 1m (got %v)", c.Backup.Interval)
		}
		if strings.TrimSpace(c.Backup.Dir) == "" {
			return fmt.Errorf("backup.dir is required when backup is enabled")
		}
	}
	if !slices.Contains(exportFormat, c.Backup.Format) {
		return fmt.Errorf("backup.format must be one of %v (got %q)", exportFormat, c.Backup.Format)
	}

	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", validLevels, c.Log.Level)
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", validFormats, c.Log.Format)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit requires requests >= 1 and a positive window")
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(s.Postgres.DSN) == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres driver")
		}
		if s.Postgres.MaxConns < 1 {
			return fmt.Errorf("postgres.max_conns must be >= 1 (got %d)", s.Postgres.MaxConns)
		}
		if s.Postgres.MinConns < 0 || s.Postgres.MinConns > s.Postgres.MaxConns {
			return fmt.Errorf("postgres.min_conns must be in [0, max_conns] (got %d)", s.Postgres.MinConns)
		}
	default:
		return fmt.Errorf("driver must be one of memory, sqlite, postgres (got %q)", s.Driver)
	}
	return nil
}
