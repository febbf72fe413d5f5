// Package trace implements the digital signal capture pipeline.
package trace

// The pipeline watches up to 8 digital input pins, timestamps every
// transition with a free-running 16-bit tick counter and streams the
// event log as ASCII hex tokens over a narrow flow-controlled channel.
//
// Records flow through two chained single-producer/single-consumer
// rings: a capture goroutine (the "interrupt context") pushes into a
// small input ring unconditionally, and the cooperative loop moves
// records into a large output ring with a rate limiter that throttles
// timer heartbeats ahead of pin-change data. A single-slot formatter
// and a one-byte-per-iteration transmitter gate output throughput to
// whatever the channel accepts, so the capture side is never blocked
// behind transport operations.
//
// Producer: capture goroutine
// Consumer: cooperative loop (drain, format, transmit, service)
