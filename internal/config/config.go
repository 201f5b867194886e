package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-school-agenda server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as session token
	// parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// per-user record store and the attachment file area.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for the remote school-portal source.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the background sync worker.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the
// session token lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session JWTs.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued session
	// token and validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid
	// after issuance (e.g. "12h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DataDir is the root directory of the per-user storage areas.
	// Every user gets a subdirectory under "<DataDir>/profiles" holding
	// the JSON record documents and the attachments file area.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// DSN selects the SQL record-store backend instead of the file
	// backend when non-empty. A "postgres://" scheme opens PostgreSQL
	// via pgx; any other value is treated as an SQLite file path.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds configuration for the remote school-portal source the
// sync orchestrator fetches homework and grades from.
type Adapter struct {
	// BaseURL is the root of the portal REST API.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound portal call. A timed-out
	// fetch is reported as a sync failure and leaves the datasets
	// untouched.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LookbackDays and LookaheadDays bound the agenda window requested
	// from the portal on every sync.
	// Env: ADAPTER_LOOKBACK_DAYS / ADAPTER_LOOKAHEAD_DAYS
	LookbackDays  int `env:"LOOKBACK_DAYS"`
	LookaheadDays int `env:"LOOKAHEAD_DAYS"`
}

// Workers holds configuration for the background sync worker.
type Workers struct {
	// SyncInterval is how often the background worker re-syncs every
	// user that has portal credentials. Zero disables the worker.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
