package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []Snapshot
}

func (p *fakePublisher) PublishStats(snap Snapshot) {
	p.published = append(p.published, snap)
}

func TestStatsCountersAreDistinguishable(t *testing.T) {
	s := &Stats{}
	s.inputOverwrite()
	s.tickThrottled()
	s.tickThrottled()
	s.tickDropped()
	s.edgeDropped()
	snap := s.Snapshot()
	require.Equal(t, uint64(1), snap.InputOverwrites)
	require.Equal(t, uint64(2), snap.TicksThrottled)
	require.Equal(t, uint64(1), snap.TickDrops)
	require.Equal(t, uint64(1), snap.EdgeDrops)
	// Intentional throttling is not loss.
	require.Equal(t, uint64(3), snap.Lost())
}

func TestReporterPublishesOnInterval(t *testing.T) {
	stats := &Stats{}
	pub := &fakePublisher{}
	r := NewReporter(stats)
	r.Interval = time.Second
	r.Publisher = pub

	start := time.Now()
	require.NoError(t, r.Control(&testCtl{now: start}))
	require.Empty(t, pub.published)

	stats.edgeDropped()
	// Within the interval: nothing reported yet.
	require.NoError(t, r.Control(&testCtl{now: start.Add(500 * time.Millisecond)}))
	require.Empty(t, pub.published)

	require.NoError(t, r.Control(&testCtl{now: start.Add(2 * time.Second)}))
	require.Len(t, pub.published, 1)
	require.Equal(t, uint64(1), pub.published[0].EdgeDrops)

	// Unchanged counters are not republished.
	require.NoError(t, r.Control(&testCtl{now: start.Add(4 * time.Second)}))
	require.Len(t, pub.published, 1)
}
