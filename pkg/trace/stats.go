package trace

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// Stats counts records lost at each stage of the pipeline. The drop
// policy itself is unchanged by the accounting: losses stay silent on
// the data path and are only observable here. Input overwrites are
// counted from the capture goroutine, everything else from the loop,
// so all fields are accessed atomically.
type Stats struct {
	inputOverwrites uint64
	ticksThrottled  uint64
	tickDrops       uint64
	edgeDrops       uint64
	txBytes         uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	InputOverwrites uint64
	TicksThrottled  uint64
	TickDrops       uint64
	EdgeDrops       uint64
	TxBytes         uint64
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		InputOverwrites: atomic.LoadUint64(&s.inputOverwrites),
		TicksThrottled:  atomic.LoadUint64(&s.ticksThrottled),
		TickDrops:       atomic.LoadUint64(&s.tickDrops),
		EdgeDrops:       atomic.LoadUint64(&s.edgeDrops),
		TxBytes:         atomic.LoadUint64(&s.txBytes),
	}
}

// Lost returns the total records lost to overload, excluding ticks
// discarded intentionally by the quota.
func (s Snapshot) Lost() uint64 {
	return s.InputOverwrites + s.TickDrops + s.EdgeDrops
}

// String renders the counters for reports.
func (s Snapshot) String() string {
	return fmt.Sprintf("overwrites=%d throttled=%d tick-drops=%d edge-drops=%d tx-bytes=%d",
		s.InputOverwrites, s.TicksThrottled, s.TickDrops, s.EdgeDrops, s.TxBytes)
}

func (s *Stats) inputOverwrite() { atomic.AddUint64(&s.inputOverwrites, 1) }
func (s *Stats) tickThrottled()  { atomic.AddUint64(&s.ticksThrottled, 1) }
func (s *Stats) tickDropped()    { atomic.AddUint64(&s.tickDrops, 1) }
func (s *Stats) edgeDropped()    { atomic.AddUint64(&s.edgeDrops, 1) }
func (s *Stats) byteSent()       { atomic.AddUint64(&s.txBytes, 1) }

// StatsPublisher receives periodic counter snapshots, e.g. a
// telemetry topic on the MQTT channel.
type StatsPublisher interface {
	PublishStats(Snapshot)
}

// Reporter periodically reports the counters. Records lost to
// overload are warned about; routine progress is logged verbose.
type Reporter struct {
	Stats     *Stats
	Interval  time.Duration
	Publisher StatsPublisher

	last     time.Time
	reported Snapshot
}

// DefaultReportInterval is the default reporting period.
const DefaultReportInterval = 10 * time.Second

// NewReporter creates a Reporter over the stats.
func NewReporter(stats *Stats) *Reporter {
	return &Reporter{Stats: stats, Interval: DefaultReportInterval}
}

// Control implements Controller.
func (r *Reporter) Control(cc fx.ControlContext) error {
	now := cc.Time()
	if r.last.IsZero() {
		r.last = now
		return nil
	}
	interval := r.Interval
	if interval == 0 {
		interval = DefaultReportInterval
	}
	if now.Sub(r.last) < interval {
		return nil
	}
	r.last = now
	snap := r.Stats.Snapshot()
	if snap == r.reported {
		return nil
	}
	if snap.Lost() > r.reported.Lost() {
		glog.Warningf("records lost: %v", snap)
	} else if glog.V(1) {
		glog.Infof("stats: %v", snap)
	}
	if p := r.Publisher; p != nil {
		p.PublishStats(snap)
	}
	r.reported = snap
	return nil
}
