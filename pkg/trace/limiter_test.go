package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func edge(ts uint16) Record {
	return NewRecord(ts, 0x01, KindEdge)
}

func tick(ts uint16) Record {
	return NewRecord(ts, 0x01, KindTimerTick)
}

func drainLimiter(t *testing.T, l *Limiter, input []Record) []Record {
	for _, rec := range input {
		require.True(t, l.In.Push(rec))
	}
	ctl := &testCtl{}
	for i := 0; i < len(input); i++ {
		require.NoError(t, l.Control(ctl))
	}
	require.True(t, l.In.Empty())
	var out []Record
	for {
		rec, ok := l.Out.Pop()
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestLimiterTickQuota(t *testing.T) {
	stats := &Stats{}
	l := NewLimiter(NewRing(16), NewRing(16), stats)
	out := drainLimiter(t, l, []Record{tick(1), tick(2), tick(3), tick(4)})
	require.Equal(t, []Record{tick(1), tick(2)}, out)
	require.Equal(t, uint64(2), stats.Snapshot().TicksThrottled)
}

func TestLimiterQuotaResetOnEdge(t *testing.T) {
	stats := &Stats{}
	l := NewLimiter(NewRing(16), NewRing(16), stats)
	out := drainLimiter(t, l, []Record{
		tick(1), tick(2), edge(3), tick(4), tick(5), tick(6),
	})
	require.Equal(t, []Record{tick(1), tick(2), edge(3), tick(4), tick(5)}, out)
	require.Equal(t, uint64(1), stats.Snapshot().TicksThrottled)
}

func TestLimiterEdgesAlwaysForwarded(t *testing.T) {
	stats := &Stats{}
	l := NewLimiter(NewRing(16), NewRing(16), stats)
	out := drainLimiter(t, l, []Record{
		tick(1), tick(2), tick(3), edge(4), edge(5),
	})
	require.Equal(t, []Record{tick(1), tick(2), edge(4), edge(5)}, out)
}

func TestLimiterOutputSaturation(t *testing.T) {
	stats := &Stats{}
	// 2-slot output ring holds a single record.
	l := NewLimiter(NewRing(16), NewRing(2), stats)
	out := drainLimiter(t, l, []Record{edge(1), edge(2), tick(3)})
	require.Equal(t, []Record{edge(1)}, out)
	snap := stats.Snapshot()
	require.Equal(t, uint64(1), snap.EdgeDrops)
	require.Equal(t, uint64(1), snap.TickDrops)
	require.Equal(t, uint64(0), snap.TicksThrottled)
}

func TestLimiterTriggersWhileInputPending(t *testing.T) {
	l := NewLimiter(NewRing(16), NewRing(16), &Stats{})
	require.True(t, l.In.Push(edge(1)))
	require.True(t, l.In.Push(edge(2)))
	ctl := &testCtl{}
	require.NoError(t, l.Control(ctl))
	require.Equal(t, 1, ctl.triggered)
	require.NoError(t, l.Control(ctl))
	require.Equal(t, 1, ctl.triggered)
}
