package breaker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultFailureLimit  = 5.0
	DefaultRecoveryTime  = 30 * time.Second
	DefaultRecoveryRatio = 0.1
)

// Config holds the tunable policy of one circuit. Immutable after
// construction; pass it to New via FromConfig or expand it with Options.
type Config struct {
	// FailureLimit is the failure count at which the circuit opens.
	FailureLimit float64 `mapstructure:"failure_limit"`

	// RecoveryTime is how long an open circuit waits before probing
	// recovery.
	RecoveryTime time.Duration `mapstructure:"recovery_time"`

	// RecoveryRatio is the fraction subtracted from the failure counter
	// on each success.
	RecoveryRatio float64 `mapstructure:"recovery_ratio"`
}

// DefaultConfig returns the stock policy: open after 5 failures, probe
// after 30 seconds, decay by 0.1 per success.
func DefaultConfig() Config {
	return Config{
		FailureLimit:  DefaultFailureLimit,
		RecoveryTime:  DefaultRecoveryTime,
		RecoveryRatio: DefaultRecoveryRatio,
	}
}

// Validate rejects configurations that would produce a circuit that never
// opens or reopens instantly: the limit and recovery time must be positive
// and the ratio must lie in (0, 1].
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FailureLimit,
			validation.Required,
			validation.Min(0.0).Exclusive(),
		),
		validation.Field(&c.RecoveryTime,
			validation.Required,
			validation.Min(time.Duration(1)),
		),
		validation.Field(&c.RecoveryRatio,
			validation.Required,
			validation.Min(0.0).Exclusive(),
			validation.Max(1.0),
		),
	)
}

// Options converts the configuration into constructor options.
func (c Config) Options() []Option {
	return []Option{FromConfig(c)}
}

// LoadConfig reads breaker.yaml from dir, overlaid with BREAKER_*
// environment variables. A missing file falls back to defaults; malformed
// or invalid values fail fast.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetDefault("failure_limit", DefaultFailureLimit)
	v.SetDefault("recovery_time", DefaultRecoveryTime)
	v.SetDefault("recovery_ratio", DefaultRecoveryRatio)

	v.SetConfigName("breaker")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("breaker")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("breaker: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("breaker: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("breaker: invalid configuration: %w", err)
	}
	return cfg, nil
}
