// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration. Defaults match the mobile
// client's reference behavior: settlement takes one to two seconds and
// the confirmation screen holds for two seconds before dismissing.
type Config struct {
	// Port is the HTTP listen port.
	Port string `env:"PORT" envDefault:"8080"`

	// GeminiModel is the model name used by the advice service.
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// SettleMinDelay and SettleMaxDelay bound the simulated settlement
	// round trip.
	SettleMinDelay time.Duration `env:"SETTLE_MIN_DELAY" envDefault:"1s"`
	SettleMaxDelay time.Duration `env:"SETTLE_MAX_DELAY" envDefault:"2s"`

	// SettledHold is how long the transfer confirmation stays up before
	// the workflow returns to idle.
	SettledHold time.Duration `env:"SETTLED_HOLD" envDefault:"2s"`

	// AdvisorTimeout bounds each advice-service call.
	AdvisorTimeout time.Duration `env:"ADVISOR_TIMEOUT" envDefault:"30s"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.SettleMaxDelay < cfg.SettleMinDelay {
		return Config{}, fmt.Errorf("config: SETTLE_MAX_DELAY %s below SETTLE_MIN_DELAY %s", cfg.SettleMaxDelay, cfg.SettleMinDelay)
	}
	return cfg, nil
}
