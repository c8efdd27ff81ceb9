// Package config defines service configuration and its layered loading:
// defaults, an optional YAML file, then ASLBIO_-prefixed environment
// variables.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":3007".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite profile database. Empty means profiles
	// are kept in memory only.
	DBPath string `koanf:"db_path"`

	// VerificationThreshold is the minimum match score for a verify
	// decision. Higher is stricter.
	VerificationThreshold float64 `koanf:"verification_threshold"`

	// MinEnrollmentQuality is the minimum capture quality score accepted
	// at enrollment.
	MinEnrollmentQuality float64 `koanf:"min_enrollment_quality"`

	// ChallengeTTLSeconds controls verification challenge expiry.
	ChallengeTTLSeconds int `koanf:"challenge_ttl_seconds"`

	// SessionTTLMinutes controls when the sweeper evicts stale sessions.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// SweepIntervalSeconds controls how often the sweeper runs.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:                  ":3007",
		VerificationThreshold: 0.75,
		MinEnrollmentQuality:  0.5,
		ChallengeTTLSeconds:   60,
		SessionTTLMinutes:     30,
		SweepIntervalSeconds:  60,
	}
}

// ChallengeTTL returns the challenge expiry as a duration.
func (c *Config) ChallengeTTL() time.Duration {
	return time.Duration(c.ChallengeTTLSeconds) * time.Second
}

// SessionTTL returns the stale-session cutoff as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// SweepInterval returns the sweeper period as a duration.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
