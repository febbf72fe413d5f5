package channel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamFlushOnService(t *testing.T) {
	var sink bytes.Buffer
	s := NewStream(&sink)
	for _, b := range []byte("0001010 ") {
		require.True(t, s.Ready())
		require.NoError(t, s.Send(b))
	}
	// Bytes stay pending until the service step flushes.
	require.Zero(t, sink.Len())
	require.NoError(t, s.Service())
	require.Equal(t, "0001010 ", sink.String())
}

func TestStreamReadiness(t *testing.T) {
	var sink bytes.Buffer
	s := NewStream(&sink)
	for i := 0; i < DefaultStreamBuffer; i++ {
		require.True(t, s.Ready())
		require.NoError(t, s.Send('A'))
	}
	require.False(t, s.Ready())
	require.NoError(t, s.Service())
	require.True(t, s.Ready())
	require.Equal(t, DefaultStreamBuffer, sink.Len())
}

func TestStreamClose(t *testing.T) {
	var sink bytes.Buffer
	s := NewStream(&sink)
	require.NoError(t, s.Send('X'))
	require.NoError(t, s.Close())
	require.Equal(t, "X", sink.String())
}
