package trace

import (
	"context"
	"time"

	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// Topology selects the capture wiring, fixed at construction.
type Topology int

const (
	// EdgeQuad triggers on changes of pins 0-3 through independent
	// edge interrupts. The peripheral reset output is available.
	EdgeQuad Topology = iota
	// ChangeOcta triggers on changes of any of the 8 pins through one
	// shared change notification. The reset output is unavailable in
	// this wiring because the hardware resource conflicts.
	ChangeOcta
)

// WatchMask returns the pins whose transitions trigger a capture.
func (t Topology) WatchMask() uint8 {
	if t == ChangeOcta {
		return 0xff
	}
	return 0x0f
}

// String returns the topology name used in flags.
func (t Topology) String() string {
	if t == ChangeOcta {
		return "octa"
	}
	return "quad"
}

// Port exposes the monitored input pins.
type Port interface {
	// State reads the current digital state of all 8 pins.
	State() uint8
	// Changes returns the channel signalled on pin transitions.
	// Each value is the bitmask of pins that changed; pending
	// notifications are coalesced into a single capture.
	Changes() <-chan uint8
}

// ResetLine drives the optional reset output used to initialize some
// attached peripherals at startup.
type ResetLine interface {
	Pulse(d time.Duration) error
}

// Capturer is the producer side of the pipeline. It runs in its own
// goroutine, multiplexing pin transitions and the heartbeat timer
// into unconditional pushes on the input ring. The body of a capture
// performs only fixed-latency work: no allocation, no blocking, no
// calls into the formatter or transport.
type Capturer struct {
	Port       Port
	Clock      Clock
	Topology   Topology
	TickPeriod time.Duration

	in    *Ring
	stats *Stats
}

// NewCapturer creates a Capturer feeding the input ring.
func NewCapturer(port Port, clock Clock, in *Ring, stats *Stats) *Capturer {
	return &Capturer{
		Port:       port,
		Clock:      clock,
		TickPeriod: TickOverflowPeriod,
		in:         in,
		stats:      stats,
	}
}

// Name implements Named.
func (c *Capturer) Name() string {
	return "capture"
}

// Run implements Runnable.
func (c *Capturer) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	period := c.TickPeriod
	if period == 0 {
		period = TickOverflowPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	watch := c.Topology.WatchMask()
	changes := c.Port.Changes()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pins := <-changes:
			// Coalesce transitions already pending so simultaneous
			// multi-pin changes yield a single record, then snapshot.
			pins |= c.drainPending(changes)
			if pins&watch == 0 {
				continue
			}
			c.capture(KindEdge)
			if loopCtl != nil {
				loopCtl.TriggerNext()
			}
		case <-ticker.C:
			c.capture(KindTimerTick)
			if loopCtl != nil {
				loopCtl.TriggerNext()
			}
		}
	}
}

func (c *Capturer) drainPending(changes <-chan uint8) (pins uint8) {
	for {
		select {
		case p := <-changes:
			pins |= p
		default:
			return
		}
	}
}

func (c *Capturer) capture(kind EventKind) {
	// The port is read before the clock; a constant offset between
	// the two reads is irrelevant since only deltas matter.
	pv := c.Port.State()
	t := c.Clock.Now()
	if c.in.ForcePush(NewRecord(t, pv, kind)) {
		c.stats.inputOverwrite()
	}
}
