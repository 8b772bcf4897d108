// Package config defines process configuration and its loading order.
package config

// Config contains process configuration for the CareShift service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxRequestOrders caps the number of orders accepted in one
	// schedule request or held in the shift context.
	MaxRequestOrders int `koanf:"max_request_orders"`

	// DemoShiftHours sets the length of the shift returned by the demo
	// payload endpoint.
	DemoShiftHours int `koanf:"demo_shift_hours"`

	// ShutdownTimeoutS bounds graceful HTTP shutdown in seconds.
	ShutdownTimeoutS int `koanf:"shutdown_timeout_s"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		MaxRequestOrders: 500,
		DemoShiftHours:   12,
		ShutdownTimeoutS: 30,
	}
}
