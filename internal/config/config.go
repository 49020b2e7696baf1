package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Translate TranslateConfig `yaml:"translate"`
	Search    SearchConfig    `yaml:"search"`
	Quiz      QuizConfig      `yaml:"quiz"`
	Backup    BackupConfig    `yaml:"backup"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds the per-client request limit of the HTTP API.
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"RATE_LIMIT_ENABLED"  env-default:"false"`
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"120"`
	Window   time.Duration `yaml:"window"   env:"RATE_LIMIT_WINDOW"   env-default:"1m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Driver     string         `yaml:"driver"      env:"STORAGE_DRIVER"      env-default:"sqlite"`
	SQLitePath string         `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" env-default:"data/salita.db"`
	Postgres   DatabaseConfig `yaml:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// TranslateConfig configures the translation proxy used by search.
// Booleans here must default to false: cleanenv applies env-default over an
// explicit false in YAML.
type TranslateConfig struct {
	Disabled   bool          `yaml:"disabled"    env:"TRANSLATE_DISABLED"    env-default:"false"`
	BaseURL    string        `yaml:"base_url"    env:"TRANSLATE_BASE_URL"    env-default:"https://pinuno-translate-proxy.onrender.com"`
	SourceLang string        `yaml:"source_lang" env:"TRANSLATE_SOURCE_LANG" env-default:"tl"`
	TargetLang string        `yaml:"target_lang" env:"TRANSLATE_TARGET_LANG" env-default:"en"`
	Timeout    time.Duration `yaml:"timeout"     env:"TRANSLATE_TIMEOUT"     env-default:"10s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"TRANSLATE_RETRY_DELAY" env-default:"500ms"`
}

// SearchConfig holds search-as-you-type settings.
type SearchConfig struct {
	MinQueryLength int           `yaml:"min_query_length" env:"SEARCH_MIN_QUERY_LENGTH" env-default:"1"`
	Debounce       time.Duration `yaml:"debounce"         env:"SEARCH_DEBOUNCE"         env-default:"150ms"`
}

// QuizConfig holds quiz settings. Seed 0 seeds from the clock.
type QuizConfig struct {
	Seed                  int64 `yaml:"seed"                    env:"QUIZ_SEED"                    env-default:"0"`
	AllowDuplicateOptions bool  `yaml:"allow_duplicate_options" env:"QUIZ_ALLOW_DUPLICATE_OPTIONS" env-default:"false"`
	MaxSessions           int   `yaml:"max_sessions"            env:"QUIZ_MAX_SESSIONS"            env-default:"64"`
}

// BackupConfig controls scheduled exports.
type BackupConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"BACKUP_ENABLED"  env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"BACKUP_INTERVAL" env-default:"24h"`
	Dir      string        `yaml:"dir"      env:"BACKUP_DIR"      env-default:"data/backups"`
	Format   string        `yaml:"format"   env:"BACKUP_FORMAT"   env-default:"json"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Origins splits AllowedOrigins into a list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
