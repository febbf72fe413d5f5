package trace

import (
	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// DefaultMaxTimerTicks is the default heartbeat forwarding quota.
const DefaultMaxTimerTicks = 2

// Limiter moves records from the input ring to the output ring, one
// per iteration, throttling timer heartbeats so the channel's limited
// throughput is reserved for pin-change data.
//
// Edges are always forwarded and reset the heartbeat quota; ticks are
// forwarded only while the quota lasts and consecutive excess ticks
// are discarded until the next edge. A forward may still be rejected
// by a full output ring; that loss is silent on the data path and is
// only surfaced through the stats counters.
type Limiter struct {
	In  *Ring
	Out *Ring

	// MaxTicks is the heartbeat quota restored by every edge.
	MaxTicks int

	allow int
	stats *Stats
}

// NewLimiter creates a Limiter between the two rings.
func NewLimiter(in, out *Ring, stats *Stats) *Limiter {
	return &Limiter{
		In:       in,
		Out:      out,
		MaxTicks: DefaultMaxTimerTicks,
		allow:    DefaultMaxTimerTicks,
		stats:    stats,
	}
}

// Control implements Controller. It is the sole consumer of the input
// ring and the sole producer of the output ring.
func (l *Limiter) Control(cc fx.ControlContext) error {
	rec, ok := l.In.Pop()
	if !ok {
		return nil
	}
	l.forward(rec)
	if !l.In.Empty() {
		cc.TriggerNext()
	}
	return nil
}

func (l *Limiter) forward(rec Record) {
	if rec.IsTick() {
		if l.allow == 0 {
			l.stats.tickThrottled()
			return
		}
		l.allow--
		if !l.Out.Push(rec) {
			l.stats.tickDropped()
		}
		return
	}
	if !l.Out.Push(rec) {
		l.stats.edgeDropped()
	}
	l.allow = l.MaxTicks
}
