// Package sim simulates the capture hardware: a monitored input
// port, the free-running timebase and the peripheral reset line.
// It stands in for the one-time hardware bring-up in demos and tests.
package sim

import (
	"sync"
	"sync/atomic"
	"time"
)

// Port simulates the monitored 8-pin input port.
type Port struct {
	state uint32
	ch    chan uint8
}

// changeBacklog bounds pending change notifications. Like a hardware
// pending-interrupt flag, an overflowing backlog coalesces: the
// capturer snapshots the live port state anyway.
const changeBacklog = 16

// NewPort creates a Port with an initial pin state.
func NewPort(initial uint8) *Port {
	p := &Port{ch: make(chan uint8, changeBacklog)}
	p.state = uint32(initial)
	return p
}

// State implements trace.Port.
func (p *Port) State() uint8 {
	return uint8(atomic.LoadUint32(&p.state))
}

// Changes implements trace.Port.
func (p *Port) Changes() <-chan uint8 {
	return p.ch
}

// Set drives the pins to a new state, signalling changed pins.
func (p *Port) Set(state uint8) {
	old := uint8(atomic.SwapUint32(&p.state, uint32(state)))
	if diff := old ^ state; diff != 0 {
		select {
		case p.ch <- diff:
		default:
		}
	}
}

// Toggle inverts the given pins.
func (p *Port) Toggle(pins uint8) {
	p.Set(p.State() ^ pins)
}

// ResetLine records reset pulses instead of driving hardware.
type ResetLine struct {
	lock   sync.Mutex
	pulses []time.Duration
}

// Pulse implements trace.ResetLine.
func (r *ResetLine) Pulse(d time.Duration) error {
	r.lock.Lock()
	r.pulses = append(r.pulses, d)
	r.lock.Unlock()
	return nil
}

// Pulses returns the recorded pulses.
func (r *ResetLine) Pulses() []time.Duration {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]time.Duration(nil), r.pulses...)
}

// Clock is a manually advanced 16-bit tick source.
type Clock struct {
	t uint32
}

// Now implements trace.Clock.
func (c *Clock) Now() uint16 {
	return uint16(atomic.LoadUint32(&c.t))
}

// Set positions the tick count.
func (c *Clock) Set(t uint16) {
	atomic.StoreUint32(&c.t, uint32(t))
}

// Advance moves the tick count forward, wrapping modulo 65536.
func (c *Clock) Advance(ticks uint16) {
	atomic.AddUint32(&c.t, uint32(ticks))
}
