package trace

import (
	"flag"
	"fmt"
	"time"
)

// Config defines the capture pipeline configuration. All capture
// policy is fixed when the pipeline is built; nothing here is
// reconfigurable at runtime.
type Config struct {
	Topology       string
	InputSlots     int
	OutputSlots    int
	MaxTimerTicks  int
	TokensPerLine  int
	TickPeriod     time.Duration
	ResetPulse     time.Duration
	ReportInterval time.Duration
}

// Defaults
const (
	DefaultInputSlots  int = 64
	DefaultOutputSlots int = 4096
)

var defaultConfig = Config{
	Topology:       EdgeQuad.String(),
	InputSlots:     DefaultInputSlots,
	OutputSlots:    DefaultOutputSlots,
	MaxTimerTicks:  DefaultMaxTimerTicks,
	TokensPerLine:  DefaultTokensPerLine,
	ReportInterval: DefaultReportInterval,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Topology, "topology", defaultConfig.Topology, "Capture topology: quad (pins 0-3) or octa (all 8 pins).")
	flag.IntVar(&defaultConfig.InputSlots, "input-slots", defaultConfig.InputSlots, "Input ring slots, rounded up to a power of two.")
	flag.IntVar(&defaultConfig.OutputSlots, "output-slots", defaultConfig.OutputSlots, "Output ring slots, rounded up to a power of two.")
	flag.IntVar(&defaultConfig.MaxTimerTicks, "max-timer-ticks", defaultConfig.MaxTimerTicks, "Heartbeats forwarded between edges before throttling.")
	flag.IntVar(&defaultConfig.TokensPerLine, "tokens-per-line", defaultConfig.TokensPerLine, "Tokens per output line.")
	flag.DurationVar(&defaultConfig.TickPeriod, "tick-period", defaultConfig.TickPeriod, "Heartbeat period, 0 for the timebase wrap period.")
	flag.DurationVar(&defaultConfig.ResetPulse, "reset-pulse", defaultConfig.ResetPulse, "Peripheral reset pulse width at startup, 0 to disable (quad topology only).")
	flag.DurationVar(&defaultConfig.ReportInterval, "report-interval", defaultConfig.ReportInterval, "Stats reporting interval.")
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

func (c *Config) topology() (Topology, error) {
	switch c.Topology {
	case "", EdgeQuad.String():
		return EdgeQuad, nil
	case ChangeOcta.String():
		return ChangeOcta, nil
	}
	return EdgeQuad, fmt.Errorf("unknown topology %q", c.Topology)
}
