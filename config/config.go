package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV:
//
//	TRADES_DIR=/data/trades
//	TRADES_EXTENSION=csv
//	TRADES_HEADER_LINES=4
//	PARSE_STRICT=false
//	SCAN_PARALLEL=0
//	WATCH_DEBOUNCE=1s
//	WATCH_BUFFER=4
//	SERVER_PORT=8080
//	SCANLOG_ENABLED=false
//	POSTGRES_HOST=localhost
type Config struct {
	Trades   TradesConfig   // Source directory and parsing rules
	Watch    WatchConfig    // Live update settings
	Server   ServerConfig   // HTTP server configuration
	ScanLog  ScanLogConfig  // Optional scan journal
	Postgres PostgresConfig // PostgreSQL connection settings for the scan journal
}

// TradesConfig describes where trade exports live and how they are parsed.
//
// Fields:
//   - Dir: root directory scanned recursively (required).
//   - Extension: file extension token without the dot (e.g., "csv").
//   - HeaderLines: report metadata lines before the table header.
//   - Strict: drop rows with unparsable numbers/timestamps instead of defaulting them.
//   - Parallel: files decoded concurrently per scan (0 = auto).
type TradesConfig struct {
	Dir         string
	Extension   string
	HeaderLines int
	Strict      bool
	Parallel    int
}

// WatchConfig holds watcher and subscription settings.
type WatchConfig struct {
	Debounce time.Duration // quiet window before a burst of events triggers a re-scan
	Buffer   int           // snapshots buffered per subscriber (oldest dropped when full)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// ScanLogConfig toggles recording of every produced snapshot in Postgres.
type ScanLogConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() at startup; components receive the
// values they need through their constructors.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	AppConfig = Load()
	validateConfig()
}

// Load reads the configuration without validating it or touching AppConfig.
// The CLI uses it to apply flag overrides before validation.
func Load() Config {
	v := viper.New()
	setDefaults(v)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TRADES_DIR", "")
	v.SetDefault("TRADES_EXTENSION", "csv")
	v.SetDefault("TRADES_HEADER_LINES", 4)
	v.SetDefault("PARSE_STRICT", false)
	v.SetDefault("SCAN_PARALLEL", 0)

	v.SetDefault("WATCH_DEBOUNCE", "1s")
	v.SetDefault("WATCH_BUFFER", 4)

	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("SCANLOG_ENABLED", false)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "tradesync")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		Trades: TradesConfig{
			Dir:         v.GetString("TRADES_DIR"),
			Extension:   v.GetString("TRADES_EXTENSION"),
			HeaderLines: v.GetInt("TRADES_HEADER_LINES"),
			Strict:      v.GetBool("PARSE_STRICT"),
			Parallel:    v.GetInt("SCAN_PARALLEL"),
		},
		Watch: WatchConfig{
			Debounce: v.GetDuration("WATCH_DEBOUNCE"),
			Buffer:   v.GetInt("WATCH_BUFFER"),
		},
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		ScanLog: ScanLogConfig{
			Enabled: v.GetBool("SCANLOG_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	cfg.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
	return cfg
}

// Problems lists missing or invalid settings. Postgres settings are only
// checked when the scan journal is enabled.
func (c Config) Problems() []string {
	var problems []string

	if c.Trades.Dir == "" {
		problems = append(problems, "TRADES_DIR")
	}
	if c.Trades.Extension == "" {
		problems = append(problems, "TRADES_EXTENSION")
	}
	if c.Trades.HeaderLines < 0 {
		problems = append(problems, "TRADES_HEADER_LINES (must be >= 0)")
	}
	if c.Watch.Debounce <= 0 {
		problems = append(problems, "WATCH_DEBOUNCE (must be a positive duration)")
	}
	if c.Watch.Buffer <= 0 {
		problems = append(problems, "WATCH_BUFFER (must be > 0)")
	}
	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	if c.ScanLog.Enabled {
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	}
	return problems
}

// validateConfig terminates the application when AppConfig is incomplete.
func validateConfig() {
	if problems := AppConfig.Problems(); len(problems) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", problems)
	}
}
