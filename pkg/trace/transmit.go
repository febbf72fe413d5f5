package trace

import (
	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// ByteChannel is the flow-controlled byte-oriented output transport.
type ByteChannel interface {
	// Ready reports whether the channel can accept the next byte.
	Ready() bool
	// Send transmits a single byte. It must only be called when the
	// channel reported Ready and must not block.
	Send(b byte) error
	// Service lets the transport flush or run internal housekeeping.
	// It is invoked once per loop iteration regardless of readiness
	// so transmission never needs to be interrupt driven.
	Service() error
}

// Transmitter streams formatted bytes through the channel, exactly
// one byte per iteration and only when the channel is ready. A stall
// of the channel simply stops progress; there is no timeout, retry or
// surfaced error on the data path.
type Transmitter struct {
	Text    *Formatter
	Channel ByteChannel

	stats *Stats
}

// NewTransmitter creates a Transmitter draining the formatter.
func NewTransmitter(text *Formatter, ch ByteChannel, stats *Stats) *Transmitter {
	return &Transmitter{Text: text, Channel: ch, stats: stats}
}

// AddToLoop implements LoopAdder. The service step registers at a
// lower priority so it runs after transmission in every iteration.
func (t *Transmitter) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvTransmit, t)
	loop.AddController(fx.PrLvService, fx.ControlFunc(t.service))
}

// Control implements Controller.
func (t *Transmitter) Control(cc fx.ControlContext) error {
	if !t.Text.Pending() || !t.Channel.Ready() {
		return nil
	}
	if err := t.Channel.Send(t.Text.NextByte()); err != nil {
		return err
	}
	t.stats.byteSent()
	if t.Text.Pending() {
		cc.TriggerNext()
	}
	return nil
}

func (t *Transmitter) service(cc fx.ControlContext) error {
	return t.Channel.Service()
}
