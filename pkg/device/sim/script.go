package sim

import (
	"context"
	"flag"
	"time"
)

// Script toggles port pins on a fixed period, generating edge traffic
// for demos and end-to-end exercise of the pipeline.
type Script struct {
	Port   *Port
	Period time.Duration
	Pins   uint8
}

// Config defines the simulated traffic configuration.
type Config struct {
	Period time.Duration
	Pins   uint
}

var defaultConfig = Config{
	Period: 5 * time.Millisecond,
	Pins:   0x01,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.Period, "sim-period", defaultConfig.Period, "Simulated pin toggle period.")
	flag.UintVar(&defaultConfig.Pins, "sim-pins", defaultConfig.Pins, "Bitmask of simulated pins to toggle.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewScript creates a Script toggling the port.
func (c *Config) NewScript(port *Port) *Script {
	return &Script{
		Port:   port,
		Period: c.Period,
		Pins:   uint8(c.Pins),
	}
}

// Name implements Named.
func (s *Script) Name() string {
	return "sim"
}

// Run implements Runnable.
func (s *Script) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Port.Toggle(s.Pins)
		}
	}
}
