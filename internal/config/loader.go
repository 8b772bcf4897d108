package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CARESHIFT_CONFIG is set
//  3. env (prefix CARESHIFT_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CARESHIFT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Map env keys like CARESHIFT_MAX_REQUEST_ORDERS -> max_request_orders,
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("CARESHIFT_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "careshift_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxRequestOrders < 1:
		return fmt.Errorf("%w: max_request_orders must be positive", ErrInvalidConfig)
	case c.DemoShiftHours < 1:
		return fmt.Errorf("%w: demo_shift_hours must be positive", ErrInvalidConfig)
	case c.ShutdownTimeoutS < 1:
		return fmt.Errorf("%w: shutdown_timeout_s must be positive", ErrInvalidConfig)
	}
	return nil
}
