package channel

import (
	"bufio"
	"context"
	"io"
	"os"
)

// Stream streams trace bytes to an io.Writer. A bounded in-memory
// buffer stands in for the transport's flow control: readiness is
// buffer space, and the blocking write is confined to the Service
// step so the transmitter itself never blocks.
type Stream struct {
	buf    *bufio.Writer
	closer io.Closer
}

// DefaultStreamBuffer is the pending buffer size of a Stream.
const DefaultStreamBuffer = 512

// NewStream creates a Stream over a writer.
func NewStream(w io.Writer) *Stream {
	return &Stream{buf: bufio.NewWriterSize(w, DefaultStreamBuffer)}
}

// OpenStream creates a Stream writing to a file, or stdout for "-".
func OpenStream(path string) (*Stream, error) {
	if path == "-" {
		return NewStream(os.Stdout), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	s := NewStream(f)
	s.closer = f
	return s, nil
}

// Open implements Link.
func (s *Stream) Open(ctx context.Context) error {
	return nil
}

// Ready implements ByteChannel.
func (s *Stream) Ready() bool {
	return s.buf.Available() > 0
}

// Send implements ByteChannel. With readiness checked first the byte
// always fits the buffer and no write is triggered here.
func (s *Stream) Send(b byte) error {
	return s.buf.WriteByte(b)
}

// Service implements ByteChannel.
func (s *Stream) Service() error {
	return s.buf.Flush()
}

// Close implements Link.
func (s *Stream) Close() error {
	err := s.buf.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
