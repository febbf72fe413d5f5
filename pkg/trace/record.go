package trace

// EventKind classifies a captured record.
type EventKind uint8

const (
	// KindEdge marks a capture triggered by a change on a monitored pin.
	KindEdge EventKind = iota
	// KindTimerTick marks a periodic heartbeat capture triggered by
	// timer overflow. It carries no pin-change information and exists
	// so a downstream observer can bound silence intervals.
	KindTimerTick
)

// Record is the atomic unit moved through the capture pipeline.
// The timestamp is kept as two bytes; only deltas between consecutive
// records are meaningful and the counter wraps modulo 65536.
type Record struct {
	TimeLo uint8
	TimeHi uint8
	Port   uint8
	Kind   EventKind
}

// NewRecord builds a record from a 16-bit timestamp.
func NewRecord(t uint16, port uint8, kind EventKind) Record {
	return Record{
		TimeLo: uint8(t),
		TimeHi: uint8(t >> 8),
		Port:   port,
		Kind:   kind,
	}
}

// Timestamp reassembles the 16-bit tick count.
func (r Record) Timestamp() uint16 {
	return uint16(r.TimeHi)<<8 | uint16(r.TimeLo)
}

// IsTick reports whether the record is a timer heartbeat.
func (r Record) IsTick() bool {
	return r.Kind == KindTimerTick
}

// TokenLen is the length of one formatted record token.
const TokenLen = 7

// AppendToken renders the record as a 7-character hex token
// (timestamp high, timestamp low, port snapshot as uppercase hex
// pairs, then one flag digit: 0 = edge, 1 = timer tick).
func (r Record) AppendToken(dst []byte) []byte {
	dst = append(dst, hexDigit(r.TimeHi>>4), hexDigit(r.TimeHi&0x0f))
	dst = append(dst, hexDigit(r.TimeLo>>4), hexDigit(r.TimeLo&0x0f))
	dst = append(dst, hexDigit(r.Port>>4), hexDigit(r.Port&0x0f))
	return append(dst, hexDigit(uint8(r.Kind)&0x01))
}

func hexDigit(v uint8) byte {
	if v < 10 {
		return '0' + v
	}
	return 'A' + v - 10
}
