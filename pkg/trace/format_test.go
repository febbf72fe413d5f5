package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func drainText(f *Formatter) string {
	var sb strings.Builder
	for f.Pending() {
		sb.WriteByte(f.NextByte())
	}
	return sb.String()
}

func TestFormatterSingleSlot(t *testing.T) {
	out := NewRing(16)
	require.True(t, out.Push(edge(1)))
	require.True(t, out.Push(edge(2)))
	f := NewFormatter(out, "")
	ctl := &testCtl{}

	require.NoError(t, f.Control(ctl))
	require.True(t, f.Pending())
	// No new record is decoded while text is pending.
	require.NoError(t, f.Control(ctl))
	require.Equal(t, "0001010 ", drainText(f))

	require.NoError(t, f.Control(ctl))
	require.Equal(t, "0002010 ", drainText(f))
}

func TestFormatterBanner(t *testing.T) {
	out := NewRing(16)
	require.True(t, out.Push(edge(1)))
	f := NewFormatter(out, Banner)
	ctl := &testCtl{}

	// The banner streams before any token.
	require.NoError(t, f.Control(ctl))
	require.Equal(t, Banner, drainText(f))
	require.NoError(t, f.Control(ctl))
	require.Equal(t, "0001010 ", drainText(f))
}

func TestFormatterLineBreaking(t *testing.T) {
	out := NewRing(32)
	for i := 1; i <= 11; i++ {
		require.True(t, out.Push(edge(uint16(i))))
	}
	f := NewFormatter(out, "")
	ctl := &testCtl{}

	var sb strings.Builder
	for i := 0; i < 11; i++ {
		require.NoError(t, f.Control(ctl))
		sb.WriteString(drainText(f))
	}
	text := sb.String()
	require.Equal(t, 9, strings.Count(text[:80], " "))
	require.Equal(t, byte('\n'), text[79])
	// The 11th record starts a fresh line.
	require.Equal(t, "000B010 ", text[80:])
}
