package trace

import "sync/atomic"

// Ring is a fixed-capacity single-producer/single-consumer queue of
// Records. Exactly one goroutine may push and exactly one other may
// pop; the head index is written only by the producer and the tail
// index only by the consumer, so no locking is involved. One slot is
// always kept empty: head==tail means empty, head+1==tail means full,
// and the usable capacity is one less than the slot count.
//
// ForcePush is the single exception to writer exclusivity: on a full
// ring the producer reclaims the oldest unread slot by advancing the
// tail with a compare-and-swap, which the consumer's Pop guards
// against with its own compare-and-swap.
type Ring struct {
	slots []Record
	mask  uint32
	head  uint32
	tail  uint32
}

// NewRing creates a ring with at least the requested number of slots,
// rounded up to a power of two so index arithmetic is a mask.
func NewRing(slots int) *Ring {
	size := uint32(2)
	for int(size) < slots {
		size <<= 1
	}
	return &Ring{
		slots: make([]Record, size),
		mask:  size - 1,
	}
}

// Cap returns the number of usable slots.
func (q *Ring) Cap() int {
	return len(q.slots) - 1
}

// Len returns the number of unread records.
func (q *Ring) Len() int {
	h := atomic.LoadUint32(&q.head)
	t := atomic.LoadUint32(&q.tail)
	return int((h - t) & q.mask)
}

// Empty reports whether there are no unread records.
func (q *Ring) Empty() bool {
	return atomic.LoadUint32(&q.head) == atomic.LoadUint32(&q.tail)
}

// Push appends a record. It fails when the ring is full and leaves
// the indices untouched.
func (q *Ring) Push(rec Record) bool {
	h := atomic.LoadUint32(&q.head)
	next := (h + 1) & q.mask
	if next == atomic.LoadUint32(&q.tail) {
		return false
	}
	q.slots[h] = rec
	atomic.StoreUint32(&q.head, next)
	return true
}

// ForcePush appends a record unconditionally. On a full ring the
// oldest unread record is dropped to make room; the return value
// reports whether that happened. Capture completeness at the input
// side is favored over graceful degradation, so overload degrades
// via lost records, never via corrupted indices.
func (q *Ring) ForcePush(rec Record) (overwrote bool) {
	h := atomic.LoadUint32(&q.head)
	next := (h + 1) & q.mask
	if t := atomic.LoadUint32(&q.tail); next == t {
		// Full: reclaim the oldest slot. If the swap loses to a
		// concurrent Pop the consumer made room and nothing is lost.
		overwrote = atomic.CompareAndSwapUint32(&q.tail, t, (t+1)&q.mask)
	}
	q.slots[h] = rec
	atomic.StoreUint32(&q.head, next)
	return
}

// Pop removes and returns the oldest record by copy.
func (q *Ring) Pop() (Record, bool) {
	for {
		t := atomic.LoadUint32(&q.tail)
		if t == atomic.LoadUint32(&q.head) {
			return Record{}, false
		}
		rec := q.slots[t]
		if atomic.CompareAndSwapUint32(&q.tail, t, (t+1)&q.mask) {
			return rec, true
		}
		// Lost the slot to a ForcePush reclaim, read again.
	}
}
