package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ASLBIO_CONFIG is set
//  3. env (prefix ASLBIO_), e.g. ASLBIO_VERIFICATION_THRESHOLD,
//     ASLBIO_ADDR, ASLBIO_DB_PATH
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("ASLBIO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like ASLBIO_VERIFICATION_THRESHOLD -> verification_threshold.
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("ASLBIO_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "aslbio_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.VerificationThreshold <= 0 || c.VerificationThreshold > 1 {
		return fmt.Errorf("verification_threshold %v out of range (0,1]", c.VerificationThreshold)
	}
	if c.MinEnrollmentQuality < 0 || c.MinEnrollmentQuality > 1 {
		return fmt.Errorf("min_enrollment_quality %v out of range [0,1]", c.MinEnrollmentQuality)
	}
	if c.ChallengeTTLSeconds <= 0 {
		return fmt.Errorf("challenge_ttl_seconds must be positive")
	}
	return nil
}
