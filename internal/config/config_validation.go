package config

import "time"

// Fallback values applied by applyDefaults when neither env, flags nor the
// JSON file provide the setting. The agenda window mirrors the portal's
// 90-day lookback/lookahead default.
const (
	defaultHTTPAddress    = "0.0.0.0:8000"
	defaultDataDir        = "data"
	defaultRequestTimeout = 30 * time.Second
	defaultAdapterTimeout = 60 * time.Second
	defaultLookbackDays   = 90
	defaultLookaheadDays  = 90
	defaultTokenIssuer    = "go-school-agenda"
	defaultTokenDuration  = 12 * time.Hour
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}
	if cfg.Adapter.LookbackDays == 0 {
		cfg.Adapter.LookbackDays = defaultLookbackDays
	}
	if cfg.Adapter.LookaheadDays == 0 {
		cfg.Adapter.LookaheadDays = defaultLookaheadDays
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.LookbackDays < 0 || cfg.Adapter.LookaheadDays < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
