package channel

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// WebSocket streams trace bytes to a websocket peer. Bytes accumulate
// in a bounded pending buffer and complete lines are sent as text
// frames from the Service step under a short write deadline, so a
// stalled peer stalls the stream instead of the loop.
type WebSocket struct {
	URL    string
	Origin string

	// WriteTimeout bounds a single frame send in Service.
	WriteTimeout time.Duration

	conn    *websocket.Conn
	pending []byte
}

// Defaults
const (
	DefaultWSOrigin       = "http://localhost/"
	DefaultWSWriteTimeout = 10 * time.Millisecond
	// wsPendingLimit bounds the unsent bytes before the link reports
	// not ready.
	wsPendingLimit = 1024
)

// NewWebSocket creates a WebSocket link for the URL.
func NewWebSocket(wsURL string) *WebSocket {
	return &WebSocket{
		URL:          wsURL,
		Origin:       DefaultWSOrigin,
		WriteTimeout: DefaultWSWriteTimeout,
	}
}

// Open implements Link.
func (w *WebSocket) Open(ctx context.Context) error {
	conn, err := websocket.Dial(w.URL, "", w.Origin)
	if err != nil {
		return err
	}
	glog.Infof("connected %q", w.URL)
	w.conn = conn
	return nil
}

// Ready implements ByteChannel.
func (w *WebSocket) Ready() bool {
	return w.conn != nil && len(w.pending) < wsPendingLimit
}

// Send implements ByteChannel.
func (w *WebSocket) Send(b byte) error {
	w.pending = append(w.pending, b)
	return nil
}

// Service implements ByteChannel. Pending bytes are framed on line
// boundaries; a deadline miss keeps the frame for the next service.
func (w *WebSocket) Service() error {
	if w.conn == nil {
		return nil
	}
	pos := bytes.LastIndexByte(w.pending, '\n')
	if pos < 0 {
		if len(w.pending) < wsPendingLimit {
			return nil
		}
		pos = len(w.pending) - 1
	}
	w.conn.SetWriteDeadline(time.Now().Add(w.WriteTimeout))
	if err := websocket.Message.Send(w.conn, string(w.pending[:pos+1])); err != nil {
		if os.IsTimeout(err) {
			return nil
		}
		return err
	}
	w.pending = w.pending[:copy(w.pending, w.pending[pos+1:])]
	return nil
}

// Close implements Link.
func (w *WebSocket) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Close()
}
