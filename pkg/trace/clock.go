package trace

import "time"

// Clock is the free-running 16-bit capture timebase. The absolute
// value is meaningless; only deltas between consecutive readings
// matter, and the count wraps modulo 65536 with no rollover marker.
type Clock interface {
	Now() uint16
}

// WallClock derives ticks from the monotonic clock at 1MHz, giving
// microsecond-class resolution with a 65.536ms wrap period.
type WallClock struct {
	origin time.Time
}

// NewWallClock creates a WallClock starting at an arbitrary origin.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

// Now implements Clock.
func (c *WallClock) Now() uint16 {
	return uint16(time.Since(c.origin) / time.Microsecond)
}

// TickOverflowPeriod is the interval between timer heartbeats when
// one is not configured explicitly: the full wrap period of the
// 16-bit timebase, so consecutive records are never more than one
// wrap apart while the pipeline is idle.
const TickOverflowPeriod = 65536 * time.Microsecond
