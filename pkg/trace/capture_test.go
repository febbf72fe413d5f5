package trace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sigtrace/sigtrace.go/pkg/device/sim"
)

func startCapturer(t *testing.T, c *Capturer) func() {
	ctx, cancel := context.WithCancel(context.TODO())
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(ctx)
	}()
	return func() {
		cancel()
		require.Equal(t, context.Canceled, <-errCh)
	}
}

func waitRecord(t *testing.T, q *Ring) Record {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec, ok := q.Pop(); ok {
			return rec
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timeout waiting for record")
	return Record{}
}

func TestCaptureEdge(t *testing.T) {
	port := sim.NewPort(0x0f)
	clock := &sim.Clock{}
	clock.Set(0x0102)
	in := NewRing(16)
	c := NewCapturer(port, clock, in, &Stats{})
	c.TickPeriod = time.Hour
	stop := startCapturer(t, c)
	defer stop()

	port.Toggle(0x01)
	rec := waitRecord(t, in)
	require.Equal(t, NewRecord(0x0102, 0x0e, KindEdge), rec)
}

func TestCaptureCoalesce(t *testing.T) {
	port := sim.NewPort(0x00)
	in := NewRing(16)
	c := NewCapturer(port, &sim.Clock{}, in, &Stats{})
	c.TickPeriod = time.Hour

	// Two transitions already pending when the capturer starts are
	// coalesced into a single record of the final port state.
	port.Toggle(0x01)
	port.Toggle(0x02)
	stop := startCapturer(t, c)
	defer stop()

	rec := waitRecord(t, in)
	require.Equal(t, uint8(0x03), rec.Port)
	require.Equal(t, KindEdge, rec.Kind)
	time.Sleep(20 * time.Millisecond)
	require.True(t, in.Empty())
}

func TestCaptureTopologyMask(t *testing.T) {
	port := sim.NewPort(0x00)
	in := NewRing(16)
	c := NewCapturer(port, &sim.Clock{}, in, &Stats{})
	c.Topology = EdgeQuad
	c.TickPeriod = time.Hour
	stop := startCapturer(t, c)
	defer stop()

	// Pin 7 is outside the quad watch mask.
	port.Toggle(0x80)
	time.Sleep(50 * time.Millisecond)
	require.True(t, in.Empty())

	port.Toggle(0x01)
	rec := waitRecord(t, in)
	require.Equal(t, uint8(0x81), rec.Port)
}

func TestCaptureOctaTopology(t *testing.T) {
	port := sim.NewPort(0x00)
	in := NewRing(16)
	c := NewCapturer(port, &sim.Clock{}, in, &Stats{})
	c.Topology = ChangeOcta
	c.TickPeriod = time.Hour
	stop := startCapturer(t, c)
	defer stop()

	port.Toggle(0x80)
	rec := waitRecord(t, in)
	require.Equal(t, uint8(0x80), rec.Port)
}

func TestCaptureHeartbeat(t *testing.T) {
	port := sim.NewPort(0x55)
	in := NewRing(16)
	c := NewCapturer(port, &sim.Clock{}, in, &Stats{})
	c.TickPeriod = 5 * time.Millisecond
	stop := startCapturer(t, c)
	defer stop()

	rec := waitRecord(t, in)
	require.Equal(t, KindTimerTick, rec.Kind)
	require.Equal(t, uint8(0x55), rec.Port)
}
