package trace

import (
	fx "github.com/sigtrace/sigtrace.go/pkg/framework"
)

// DefaultTokensPerLine is the number of tokens per output line.
const DefaultTokensPerLine = 10

// Formatter renders records from the output ring into text, one
// record at a time. It keeps exactly one in-flight text buffer and
// decodes the next record only after the transmitter has consumed
// the previous one, so formatting throughput is gated by transmission
// throughput and memory stays bounded.
type Formatter struct {
	Out *Ring

	// TokensPerLine controls line breaking: tokens are separated by a
	// space and every TokensPerLine-th token ends the line instead.
	TokensPerLine int

	buf   []byte
	pos   int
	count int
}

// NewFormatter creates a Formatter consuming the output ring. The
// preload text, if any, is streamed before the first token (used for
// the startup banner).
func NewFormatter(out *Ring, preload string) *Formatter {
	return &Formatter{
		Out:           out,
		TokensPerLine: DefaultTokensPerLine,
		buf:           append(make([]byte, 0, TokenLen+1), preload...),
	}
}

// Pending reports whether formatted text awaits transmission.
func (f *Formatter) Pending() bool {
	return f.pos < len(f.buf)
}

// NextByte consumes one byte of the formatted text. It must only be
// called by the transmitter while Pending.
func (f *Formatter) NextByte() byte {
	b := f.buf[f.pos]
	f.pos++
	return b
}

// Control implements Controller.
func (f *Formatter) Control(cc fx.ControlContext) error {
	if f.Pending() {
		return nil
	}
	rec, ok := f.Out.Pop()
	if !ok {
		return nil
	}
	f.buf = rec.AppendToken(f.buf[:0])
	if f.count++; f.count < f.TokensPerLine {
		f.buf = append(f.buf, ' ')
	} else {
		f.buf = append(f.buf, '\n')
		f.count = 0
	}
	f.pos = 0
	return nil
}
