package trace

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"

	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// Version is the tracer version announced in the startup banner.
const Version = "1.01"

// Banner is the single startup line emitted before the token stream.
const Banner = "sigtrace v" + Version + "\n"

// ErrResetUnavailable indicates a reset pulse was requested in a
// topology whose hardware resource conflicts with the reset output.
var ErrResetUnavailable = errors.New("reset output unavailable in octa topology")

// Pipeline wires the full capture path: capture goroutine, input
// ring, rate limiter, output ring, formatter and transmitter. Both
// rings are allocated once here and live for the process lifetime.
type Pipeline struct {
	Capturer    *Capturer
	Limiter     *Limiter
	Formatter   *Formatter
	Transmitter *Transmitter
	Reporter    *Reporter
	Stats       *Stats

	resetLine  ResetLine
	resetPulse time.Duration
}

// NewPipeline assembles a pipeline from the config.
func (c *Config) NewPipeline(port Port, clock Clock, ch ByteChannel) (*Pipeline, error) {
	topology, err := c.topology()
	if err != nil {
		return nil, err
	}
	if c.ResetPulse > 0 && topology == ChangeOcta {
		return nil, ErrResetUnavailable
	}
	stats := &Stats{}
	in := NewRing(c.InputSlots)
	out := NewRing(c.OutputSlots)

	p := &Pipeline{
		Stats:      stats,
		resetPulse: c.ResetPulse,
	}
	p.Capturer = NewCapturer(port, clock, in, stats)
	p.Capturer.Topology = topology
	if c.TickPeriod > 0 {
		p.Capturer.TickPeriod = c.TickPeriod
	}
	p.Limiter = NewLimiter(in, out, stats)
	p.Limiter.MaxTicks = c.MaxTimerTicks
	p.Limiter.allow = c.MaxTimerTicks
	p.Formatter = NewFormatter(out, Banner)
	if c.TokensPerLine > 0 {
		p.Formatter.TokensPerLine = c.TokensPerLine
	}
	p.Transmitter = NewTransmitter(p.Formatter, ch, stats)
	p.Reporter = NewReporter(stats)
	if c.ReportInterval > 0 {
		p.Reporter.Interval = c.ReportInterval
	}
	if pub, ok := ch.(StatsPublisher); ok {
		p.Reporter.Publisher = pub
	}
	return p, nil
}

// WithResetLine attaches the reset output driven during Startup.
func (p *Pipeline) WithResetLine(line ResetLine) *Pipeline {
	p.resetLine = line
	return p
}

// Startup performs the one-shot bring-up that precedes the loop:
// the optional reset pulse for attached peripherals.
func (p *Pipeline) Startup(ctx context.Context) error {
	if p.resetLine == nil || p.resetPulse == 0 {
		return nil
	}
	glog.V(2).Infof("reset pulse %v", p.resetPulse)
	return p.resetLine.Pulse(p.resetPulse)
}

// AddToLoop implements LoopAdder.
func (p *Pipeline) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun(p.Capturer.Name(), p.Capturer))
	loop.AddController(fx.PrLvDrain, p.Limiter)
	loop.AddController(fx.PrLvFormat, p.Formatter)
	p.Transmitter.AddToLoop(loop)
	loop.AddController(fx.PrLvReport, p.Reporter)
}
